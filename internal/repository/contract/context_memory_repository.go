package contract

import (
	"context"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredMemory pairs a memory with its vector distance to the query
// (pgvector cosine distance, lower is closer).
type ScoredMemory struct {
	Memory   *entity.ContextMemory
	Distance float64
}

type ContextMemoryRepository interface {
	Create(ctx context.Context, memory *entity.ContextMemory) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextMemory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilar ranks the caller's memories that carry an embedding by
	// ascending cosine distance to the query vector.
	SearchSimilar(ctx context.Context, orgId, userId uuid.UUID, embedding []float32, limit int) ([]*ScoredMemory, error)

	// SearchLexical is the degraded mode used when no query vector is
	// available: substring match over content, most recent first.
	SearchLexical(ctx context.Context, orgId, userId uuid.UUID, query string, limit int) ([]*entity.ContextMemory, error)
}
