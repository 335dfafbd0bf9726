package implementation

import (
	"context"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/mapper"
	"ai-recruiting-be/internal/model"
	"ai-recruiting-be/internal/repository/contract"
	"ai-recruiting-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ContextMemoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryMapper
}

func NewContextMemoryRepository(db *gorm.DB) contract.ContextMemoryRepository {
	return &ContextMemoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryMapper(),
	}
}

func (r *ContextMemoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ContextMemoryRepositoryImpl) Create(ctx context.Context, memory *entity.ContextMemory) error {
	m := r.mapper.ToModel(memory)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*memory = *r.mapper.ToEntity(m)
	return nil
}

func (r *ContextMemoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextMemory, error) {
	var models []*model.ContextMemory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ContextMemoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ContextMemory{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SearchSimilar ranks by pgvector cosine distance (embedding <=> query),
// nearest first. Rows without an embedding never participate.
func (r *ContextMemoryRepositoryImpl) SearchSimilar(ctx context.Context, orgId, userId uuid.UUID, embedding []float32, limit int) ([]*contract.ScoredMemory, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.ContextMemory
		Distance float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("memories").
		Select("memories.*, embedding <=> ? as distance", queryVector).
		Where("org_id = ? AND user_id = ?", orgId, userId).
		Where("embedding IS NOT NULL").
		Order("distance ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredMemory, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredMemory{
			Memory:   r.mapper.ToEntity(&res.ContextMemory),
			Distance: res.Distance,
		}
	}
	return scored, nil
}

// SearchLexical is the fallback when the query could not be embedded.
func (r *ContextMemoryRepositoryImpl) SearchLexical(ctx context.Context, orgId, userId uuid.UUID, query string, limit int) ([]*entity.ContextMemory, error) {
	if limit <= 0 {
		limit = 5
	}

	var models []*model.ContextMemory
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND user_id = ?", orgId, userId).
		Where("content ILIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
