package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCandidateRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type CreateCandidateResponse struct {
	Id uuid.UUID `json:"id"`
}

type UploadDocumentResponse struct {
	CandidateId uuid.UUID `json:"candidate_id"`
	ParseStatus string    `json:"parse_status"`
}

type ShowCandidateResponse struct {
	Id          uuid.UUID             `json:"id"`
	FullName    string                `json:"full_name"`
	Email       string                `json:"email"`
	ParseStatus string                `json:"parse_status"`
	Document    *CandidateDocumentDto `json:"document,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   *time.Time            `json:"updated_at"`
}

type CandidateDocumentDto struct {
	Text          string    `json:"text"`
	PageCount     *int      `json:"page_count"`
	TokenCount    int       `json:"token_count"`
	Confidence    *float64  `json:"confidence"`
	ExtractMethod string    `json:"extract_method"`
	CreatedAt     time.Time `json:"created_at"`
}

type SemanticSearchCandidateResponse struct {
	Id          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Score       float32   `json:"score"`
	Snippet     string    `json:"snippet"`
	ParseStatus string    `json:"parse_status"`
}

// ParseStatusNotification is pushed over the websocket while a document
// moves through the extraction pipeline.
type ParseStatusNotification struct {
	CandidateId uuid.UUID `json:"candidate_id"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
