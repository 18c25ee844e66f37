package model

import (
	"time"
)

// Notification kinds, stored in the database and served on the wire.
const (
	KindChat           = "chat"
	KindQuestion       = "pergunta"
	KindAnswer         = "resposta"
	KindRating         = "avaliacao"
	KindAppointment    = "compromisso"
	KindBudget         = "orcamento"
	KindServiceComment = "comentario_servico"
	KindOther          = "outro"
)

// Budget action sub-kinds accepted by the budget notification constructor.
const (
	BudgetActionRequested = "solicitacao"
	BudgetActionReplied   = "resposta"
	BudgetActionAccepted  = "aceito"
	BudgetActionDeclined  = "recusado"
	BudgetActionMessage   = "mensagem"
)

// Notification represents a user notification
type Notification struct {
	ID                string    `json:"id" db:"id"`
	UserID            int       `json:"user_id" db:"user_id"`
	Kind              string    `json:"tipo" db:"kind"`
	Title             string    `json:"titulo" db:"title"`
	Message           string    `json:"mensagem" db:"message"`
	Link              string    `json:"url,omitempty" db:"link"`
	IsRead            bool      `json:"lida" db:"is_read"`
	CreatedAt         time.Time `json:"data_criacao" db:"created_at"`
	RelatedObjectID   string    `json:"objeto_id,omitempty" db:"related_object_id"`
	RelatedObjectType string    `json:"objeto_tipo,omitempty" db:"related_object_type"`
}

// NotificationCreate represents data for creating a notification
type NotificationCreate struct {
	UserID            int    `json:"user_id" validate:"required,gt=0"`
	Kind              string `json:"tipo" validate:"required,max=20,oneof=chat pergunta resposta avaliacao compromisso orcamento comentario_servico outro"`
	Title             string `json:"titulo" validate:"required,max=200"`
	Message           string `json:"mensagem" validate:"required"`
	Link              string `json:"url,omitempty" validate:"omitempty,max=500"`
	RelatedObjectID   string `json:"objeto_id,omitempty"`
	RelatedObjectType string `json:"objeto_tipo,omitempty" validate:"omitempty,max=50"`
}

// NotificationItem is a single notification as rendered in the list
// response, with display-formatted timestamps.
type NotificationItem struct {
	ID           string `json:"id"`
	Kind         string `json:"tipo"`
	Title        string `json:"titulo"`
	Message      string `json:"mensagem"`
	Link         string `json:"url"`
	IsRead       bool   `json:"lida"`
	CreatedAt    string `json:"data_criacao"`
	RelativeTime string `json:"tempo_relativo"`
}

// NotificationListResponse represents the list endpoint payload
type NotificationListResponse struct {
	Notifications []NotificationItem `json:"notificacoes"`
	TotalUnread   int                `json:"total_nao_lidas"`
}

// NotificationCountResponse represents the count of unread notifications
type NotificationCountResponse struct {
	TotalUnread int `json:"total_nao_lidas"`
}

// NotificationMarkResponse represents the response after marking
// notifications as read
type NotificationMarkResponse struct {
	Success     bool `json:"success"`
	TotalUnread int  `json:"total_nao_lidas"`
}

// UserRef identifies a platform user involved in a domain event. The
// platform resolves it from its own user store; this service never
// dereferences it.
type UserRef struct {
	ID       int
	Username string
	FullName string
}

// DisplayName returns the user's full name, falling back to the username
// when no full name is set.
func (u UserRef) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// EventRef identifies an event a question or answer belongs to.
type EventRef struct {
	ID   int
	Name string
}

// ProviderRef identifies a service provider profile and its owning user.
type ProviderRef struct {
	ID   int
	User UserRef
}
