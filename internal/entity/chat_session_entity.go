package entity

import (
	"time"

	"github.com/google/uuid"
)

// Action is one entry of a session's ordered action log.
type Action struct {
	Type       string                 `json:"type"`
	Detail     map[string]interface{} `json:"detail,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type ChatSession struct {
	Id             uuid.UUID
	OrgId          uuid.UUID
	UserId         uuid.UUID
	Title          string
	Summary        string
	MessageCount   int
	CandidateCount int
	ActionsTaken   []Action
	StartedAt      time.Time
	LastActiveAt   time.Time
}
