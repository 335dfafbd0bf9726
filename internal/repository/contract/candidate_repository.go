package contract

import (
	"context"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *entity.Candidate) error
	Update(ctx context.Context, candidate *entity.Candidate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Candidate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Candidate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateParseStatus(ctx context.Context, candidateId uuid.UUID, status string) error
}
