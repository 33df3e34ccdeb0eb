// Package jwt реализует генерацию и парсинг сессионных JWT токенов.
//
// Токен самодостаточен: несет uid пользователя (subject) и срок действия.
// Серверного хранилища сессий нет, отзыв токена не поддерживается —
// смена секретного ключа инвалидирует все выданные токены.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL — срок действия токена, если TTL не задан явно.
const DefaultTokenTTL = 15 * time.Minute

// Claims описывает проверенное содержимое сессионного токена:
// uid пользователя в Subject и сроки действия в стандартных полях.
type Claims struct {
	jwt.RegisteredClaims
}

// UserUID возвращает uid пользователя из токена.
func (c *Claims) UserUID() string {
	return c.Subject
}

// Maker описывает интерфейс для генерации и парсинга сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен для userUID со сроком действия ttl.
	// При ttl <= 0 используется DefaultTokenTTL.
	GenerateToken(userUID string, ttl time.Duration) (string, error)
	// ParseToken возвращает *Claims, если токен корректен и не просрочен.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа процесса.
type MakerImpl struct {
	secretKey string           // Секретный ключ для подписи токенов.
	now       func() time.Time // Источник времени, подменяется в тестах.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа.
func NewMaker(secretKey string) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		now:       time.Now,
	}
}

// NewMakerWithClock создаёт MakerImpl с заданным источником времени.
// Используется в тестах для проверки границ срока действия.
func NewMakerWithClock(secretKey string, now func() time.Time) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		now:       now,
	}
}
