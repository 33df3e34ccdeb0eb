package models

import "time"

// MealPlan представляет позицию каталога планов питания.
type MealPlan struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"` // Уникальное название
	Description  string     `json:"description"`
	PricePerMeal float64    `json:"price_per_meal"`
	PlanType     string     `json:"plan_type"` // diet, protein или royal
	Features     []string   `json:"features,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// MealPlanRequest — входные данные создания или обновления позиции каталога.
type MealPlanRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=100"`
	Description  string   `json:"description" validate:"required,min=10,max=500"`
	PricePerMeal float64  `json:"price_per_meal" validate:"required,gt=0"`
	PlanType     string   `json:"plan_type" validate:"required"`
	Features     []string `json:"features,omitempty"`
}
