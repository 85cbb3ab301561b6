package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message        string     `json:"message" validate:"required,max=4000"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	ProjectId      *uuid.UUID `json:"project_id,omitempty"`
}

type CreateConversationResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllConversationsResponse struct {
	Id        uuid.UUID  `json:"id"`
	ProjectId *uuid.UUID `json:"project_id,omitempty"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetConversationHistoryResponse struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
