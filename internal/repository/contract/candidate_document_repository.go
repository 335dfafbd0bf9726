package contract

import (
	"context"

	"ai-recruiting-be/internal/entity"

	"github.com/google/uuid"
)

type CandidateDocumentRepository interface {
	// Upsert replaces the stored text for a candidate on re-parse. The row is
	// keyed by candidate_id; at most one document exists per candidate.
	Upsert(ctx context.Context, document *entity.CandidateDocument) error
	FindByCandidateId(ctx context.Context, candidateId uuid.UUID) (*entity.CandidateDocument, error)
}
