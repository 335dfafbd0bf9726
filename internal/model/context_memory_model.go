package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ContextMemory struct {
	Id         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrgId      uuid.UUID        `gorm:"type:uuid;not null;index:idx_memories_org_user"`
	UserId     uuid.UUID        `gorm:"type:uuid;not null;index:idx_memories_org_user"`
	SessionId  *uuid.UUID       `gorm:"type:uuid;index"`
	MemoryType string           `gorm:"type:varchar(50);not null"`
	Content    string           `gorm:"type:text;not null"`
	Embedding  *pgvector.Vector `gorm:"type:vector(768)"` // null when the embedding call failed; lexical search still finds it
	RelatedIds datatypes.JSON   `gorm:"type:jsonb"`
	Metadata   datatypes.JSON   `gorm:"type:jsonb"`
	CreatedAt  time.Time        `gorm:"autoCreateTime;index"`
}

func (ContextMemory) TableName() string {
	return "memories"
}
