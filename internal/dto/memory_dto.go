package dto

import (
	"time"

	"github.com/google/uuid"
)

type SaveMemoryRequest struct {
	SessionId  *uuid.UUID             `json:"session_id"`
	MemoryType string                 `json:"memory_type" validate:"required"`
	Content    string                 `json:"content" validate:"required"`
	RelatedIds []string               `json:"related_ids"`
	Metadata   map[string]interface{} `json:"metadata"`
}

type SaveMemoryResponse struct {
	Id       uuid.UUID `json:"id"`
	Embedded bool      `json:"embedded"`
}

type MemorySearchResponseItem struct {
	Id         uuid.UUID `json:"id"`
	MemoryType string    `json:"memory_type"`
	Content    string    `json:"content"`
	Score      *float64  `json:"score,omitempty"` // nil for the lexical fallback path
	CreatedAt  time.Time `json:"created_at"`
}
