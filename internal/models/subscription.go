package models

import "time"

// Subscription представляет подписку на доставку питания.
//
// TotalPrice — производное поле: всегда пересчитывается из тарифа и
// выбранных опций при создании, клиентом напрямую не задается.
// Окно паузы либо отсутствует целиком, либо заданы обе границы.
type Subscription struct {
	ID             int        `json:"id"`
	UserUID        string     `json:"user_uid"`         // Владелец подписки
	Name           string     `json:"name"`             // Имя получателя
	Phone          string     `json:"phone"`            // Телефон, нормализованный до цифр
	Plan           string     `json:"plan"`             // Тариф: diet, protein или royal
	MealTypes      []string   `json:"meal_types"`       // Выбранные приемы пищи, порядок сохраняется
	DeliveryDays   []string   `json:"delivery_days"`    // Дни доставки
	Allergies      *string    `json:"allergies"`        // Аллергии, опционально
	TotalPrice     float64    `json:"total_price"`      // Месячная стоимость, производное поле
	IsActive       bool       `json:"is_active"`        // false — подписка деактивирована
	PauseStartDate *time.Time `json:"pause_start_date"` // Начало окна паузы
	PauseEndDate   *time.Time `json:"pause_end_date"`   // Конец окна паузы
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

// EffectivelyActive сообщает, действует ли подписка на дату today:
// is_active и текущая дата вне окна паузы. Предикат вычисляется при
// чтении и нигде не хранится.
func (s *Subscription) EffectivelyActive(today time.Time) bool {
	if !s.IsActive {
		return false
	}
	if s.PauseStartDate == nil || s.PauseEndDate == nil {
		return true
	}
	day := today.Truncate(24 * time.Hour)
	return day.Before(*s.PauseStartDate) || day.After(*s.PauseEndDate)
}

// Paused сообщает, находится ли активная подписка в окне паузы на дату today.
func (s *Subscription) Paused(today time.Time) bool {
	return s.IsActive && s.PauseStartDate != nil && s.PauseEndDate != nil &&
		!s.EffectivelyActive(today)
}

// CreateSubscriptionRequest используется для приёма данных из JSON-запроса
// на оформление подписки. Словари значений проверяются в сервисе.
type CreateSubscriptionRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=100"`
	Phone        string   `json:"phone" validate:"required"`
	Plan         string   `json:"plan" validate:"required"`
	MealTypes    []string `json:"meal_types" validate:"required,min=1"`
	DeliveryDays []string `json:"delivery_days" validate:"required,min=1"`
	Allergies    string   `json:"allergies,omitempty" validate:"omitempty,max=500"`
}

// PauseSubscriptionRequest — окно паузы из JSON-запроса, даты строками
// в формате 2006-01-02.
type PauseSubscriptionRequest struct {
	PauseStartDate string `json:"pause_start_date" validate:"required,datetime=2006-01-02"`
	PauseEndDate   string `json:"pause_end_date" validate:"required,datetime=2006-01-02"`
}
