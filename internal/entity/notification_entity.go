package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a fire-and-forget message about a generation outcome.
// Recipient is an e-mail address and may be empty.
type Notification struct {
	Id         uuid.UUID              `json:"id"`
	Type       string                 `json:"type"`
	UserId     uuid.UUID              `json:"user_id"`
	Recipient  string                 `json:"recipient,omitempty"`
	EntityType string                 `json:"entity_type,omitempty"`
	EntityId   *uuid.UUID             `json:"entity_id,omitempty"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
