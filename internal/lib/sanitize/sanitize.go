// Package sanitize содержит функции очистки и нормализации пользовательского ввода.
//
// Все строки, попадающие от клиента в хранилище (имена, сообщения,
// аллергии), проходят через Clean: HTML экранируется, скриптовые
// конструкции вырезаются. Телефоны нормализуются к строке из цифр.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptRe  = regexp.MustCompile(`(?is)<script.*?</script>`)
	jsProtoRe = regexp.MustCompile(`(?i)javascript:`)
	handlerRe = regexp.MustCompile(`(?i)on\w+\s*=`)
	nonDigit  = regexp.MustCompile(`[^\d]`)
	nameRe    = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)
)

// Clean экранирует HTML и вырезает потенциально опасные конструкции
// (script-блоки, javascript: схемы, inline-обработчики событий).
func Clean(input string) string {
	sanitized := html.EscapeString(input)
	sanitized = scriptRe.ReplaceAllString(sanitized, "")
	sanitized = jsProtoRe.ReplaceAllString(sanitized, "")
	sanitized = handlerRe.ReplaceAllString(sanitized, "")
	return strings.TrimSpace(sanitized)
}

// Phone нормализует телефон к строке из цифр.
// Возвращает нормализованное значение и признак валидности (10–13 цифр).
func Phone(phone string) (string, bool) {
	digits := nonDigit.ReplaceAllString(phone, "")
	return digits, len(digits) >= 10 && len(digits) <= 13
}

// ValidName проверяет имя: 2–100 символов, только буквы, пробелы
// и распространенная пунктуация.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < 2 || len(name) > 100 {
		return false
	}
	return nameRe.MatchString(name)
}

// ValidMessage проверяет текст сообщения: 10–1000 символов без учета
// краевых пробелов.
func ValidMessage(message string) bool {
	trimmed := strings.TrimSpace(message)
	return len(trimmed) >= 10 && len(message) <= 1000
}
