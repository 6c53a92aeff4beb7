package repository

import "github.com/sigescola/sigescola-api/internal/domain/entity"

// NotificationRepository define o porto de persistência para notificações (DIP).
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	// ListByUser devolve as notificações mais recentes primeiro.
	ListByUser(userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) error
}
