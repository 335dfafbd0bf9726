package model

import (
	"time"

	"github.com/google/uuid"
)

// CandidateDocument holds the extracted CV text for one candidate. One row
// per candidate; a re-parse overwrites in place (upsert on candidate_id).
type CandidateDocument struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CandidateId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Text          string    `gorm:"type:text;not null"`
	PageCount     *int
	TokenCount    int      `gorm:"not null;default:0"`
	Confidence    *float64 // nil for native extraction paths
	ExtractMethod string   `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (CandidateDocument) TableName() string {
	return "candidate_documents"
}
