package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Role        string
	Message     string
	ToolCalls   map[string]interface{}
	ToolResults map[string]interface{}
	Metadata    map[string]interface{}
	CreatedAt   time.Time
}
