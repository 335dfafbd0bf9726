package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContextMemory struct {
	Id         uuid.UUID
	OrgId      uuid.UUID
	UserId     uuid.UUID
	SessionId  *uuid.UUID
	MemoryType string
	Content    string
	Embedding  []float32 // empty when stored without a vector
	RelatedIds []string
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}
