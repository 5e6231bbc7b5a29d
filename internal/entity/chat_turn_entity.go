package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one prompt/response exchange. Turns are never mutated.
type ChatTurn struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Prompt        string
	Response      string
	CreatedAt     time.Time
}
