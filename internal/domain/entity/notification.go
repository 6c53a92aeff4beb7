package entity

import "time"

// Tipos de notificação exibidos no sino do painel.
const (
	NotificationInfo     = "info"
	NotificationAlerta   = "alerta"
	NotificationPendente = "pendencia"
)

// Notification é um aviso dirigido a um usuário (prestação vencendo,
// documento com ressalvas, lançamento estornado).
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Kind      string // info | alerta | pendencia
	Link      string // rota do painel relacionada ao aviso
	Read      bool
	CreatedAt time.Time
}
