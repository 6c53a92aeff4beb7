package dto

import "time"

// NotificationRequest criação de aviso pela secretaria.
type NotificationRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Link    string `json:"link"`
}

// NotificationResponse aviso do sino do painel.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message,omitempty"`
	Kind      string    `json:"kind"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
