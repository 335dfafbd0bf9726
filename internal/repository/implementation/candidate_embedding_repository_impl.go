package implementation

import (
	"context"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/mapper"
	"ai-recruiting-be/internal/model"
	"ai-recruiting-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CandidateEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CandidateMapper
}

func NewCandidateEmbeddingRepository(db *gorm.DB) contract.CandidateEmbeddingRepository {
	return &CandidateEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewCandidateMapper(),
	}
}

func (r *CandidateEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.CandidateEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.CandidateEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.EmbeddingToModel(e)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.EmbeddingToEntity(m)
	}
	return nil
}

func (r *CandidateEmbeddingRepositoryImpl) DeleteByCandidateId(ctx context.Context, candidateId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateId).
		Delete(&model.CandidateEmbedding{}).Error
}

// SearchSimilarWithScore joins candidates to scope the search to one org and
// converts pgvector cosine distance into a similarity (1 - distance).
func (r *CandidateEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, orgId uuid.UUID, embedding []float32, limit int, threshold float64) ([]*contract.ScoredCandidateEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.CandidateEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("candidate_embeddings").
		Select("candidate_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN candidates ON candidates.id = candidate_embeddings.candidate_id").
		Where("candidates.org_id = ?", orgId).
		Where("candidates.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCandidateEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCandidateEmbedding{
			Embedding:  r.mapper.EmbeddingToEntity(&res.CandidateEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *CandidateEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CandidateEmbedding{}).Count(&count).Error
	return count, err
}
