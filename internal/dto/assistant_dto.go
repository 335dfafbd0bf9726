package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatRequest struct {
	Message   string     `json:"message" validate:"required"`
	SessionId *uuid.UUID `json:"session_id"`
}

type ChatResponse struct {
	SessionId uuid.UUID                  `json:"session_id"`
	Reply     string                     `json:"reply"`
	Sources   []ChatSourceDto            `json:"sources,omitempty"`
	Memories  []MemorySearchResponseItem `json:"memories,omitempty"`
}

// ChatSourceDto identifies a candidate document that grounded the reply.
type ChatSourceDto struct {
	CandidateId uuid.UUID `json:"candidate_id"`
	FullName    string    `json:"full_name"`
	Score       float32   `json:"score"`
}

type ShowSessionResponse struct {
	Id             uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Summary        string           `json:"summary"`
	MessageCount   int              `json:"message_count"`
	CandidateCount int              `json:"candidate_count"`
	Actions        []SessionAction  `json:"actions_taken"`
	Messages       []ChatMessageDto `json:"messages,omitempty"`
	StartedAt      time.Time        `json:"started_at"`
	LastActiveAt   time.Time        `json:"last_active_at"`
}

type SessionAction struct {
	Type       string                 `json:"type"`
	Detail     map[string]interface{} `json:"detail,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type ChatMessageDto struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type UpdateSummaryRequest struct {
	SessionId uuid.UUID
	Title     string `json:"title"`
	Summary   string `json:"summary" validate:"required"`
}
