package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Candidate struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrgId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	FullName    string         `gorm:"type:text;not null"`
	Email       string         `gorm:"type:text;index"`
	ParseStatus string         `gorm:"type:varchar(20);not null;default:'queued'"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Candidate) TableName() string {
	return "candidates"
}
