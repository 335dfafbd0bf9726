package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatSession struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrgId          uuid.UUID      `gorm:"type:uuid;not null;index:idx_sessions_org_user"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index:idx_sessions_org_user"`
	Title          string         `gorm:"type:text;not null"`
	Summary        string         `gorm:"type:text"`
	MessageCount   int            `gorm:"not null;default:0"`
	CandidateCount int            `gorm:"not null;default:0"`
	ActionsTaken   datatypes.JSON `gorm:"type:jsonb"`
	StartedAt      time.Time      `gorm:"autoCreateTime"`
	LastActiveAt   time.Time      `gorm:"not null;index"`
}

func (ChatSession) TableName() string {
	return "sessions"
}
