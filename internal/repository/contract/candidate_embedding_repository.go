package contract

import (
	"context"

	"ai-recruiting-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredCandidateEmbedding carries a chunk embedding plus its cosine
// similarity to the query vector.
type ScoredCandidateEmbedding struct {
	Embedding  *entity.CandidateEmbedding
	Similarity float64
}

type CandidateEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.CandidateEmbedding) error
	DeleteByCandidateId(ctx context.Context, candidateId uuid.UUID) error
	SearchSimilarWithScore(ctx context.Context, orgId uuid.UUID, embedding []float32, limit int, threshold float64) ([]*ScoredCandidateEmbedding, error)
	Count(ctx context.Context) (int64, error)
}
