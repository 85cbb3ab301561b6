package entity

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	ProjectId *uuid.UUID
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

type ConversationMessage struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string
	Content        string
	Metadata       map[string]interface{} // tool result payloads keyed by result kind
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
