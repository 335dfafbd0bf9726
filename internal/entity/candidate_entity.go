package entity

import (
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	Id          uuid.UUID
	OrgId       uuid.UUID
	FullName    string
	Email       string
	ParseStatus string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

type CandidateDocument struct {
	Id            uuid.UUID
	CandidateId   uuid.UUID
	Text          string
	PageCount     *int
	TokenCount    int
	Confidence    *float64
	ExtractMethod string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type CandidateEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	CandidateId    uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
}
