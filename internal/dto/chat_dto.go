package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SendChatRequest struct {
	Question string `json:"question" validate:"required"`
}

type ChatHistoryEntry struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

// StreamEvent is one decoded protocol event, re-emitted to the UI verbatim.
// status → Message carries a transient progress label; content → Content is
// an incremental fragment; done → Content is the optional full fallback;
// error → Message is the terminal failure text.
type StreamEvent struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Content string `json:"content,omitempty"`
}
