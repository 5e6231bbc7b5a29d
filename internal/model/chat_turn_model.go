package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatTurn struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_turns_session_created,priority:1"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Prompt        string    `gorm:"type:text;not null"`
	Response      string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index:idx_chat_turns_session_created,priority:2"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
