package models

import "time"

// Testimonial представляет отзыв пользователя.
// Публично показываются только отзывы, одобренные администратором.
type Testimonial struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"user_uid"`
	Name       string    `json:"name"`
	Message    string    `json:"message"`
	Rating     int       `json:"rating"` // 1–5 звезд
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateTestimonialRequest — входные данные нового отзыва.
type CreateTestimonialRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}
