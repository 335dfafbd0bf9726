package implementation

import (
	"context"
	"errors"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/mapper"
	"ai-recruiting-be/internal/model"
	"ai-recruiting-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CandidateDocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CandidateMapper
}

func NewCandidateDocumentRepository(db *gorm.DB) contract.CandidateDocumentRepository {
	return &CandidateDocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewCandidateMapper(),
	}
}

// Upsert keys on candidate_id: a re-parse replaces text and metadata in place.
func (r *CandidateDocumentRepositoryImpl) Upsert(ctx context.Context, document *entity.CandidateDocument) error {
	m := r.mapper.DocumentToModel(document)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "candidate_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"text", "page_count", "token_count", "confidence", "extract_method", "updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*document = *r.mapper.DocumentToEntity(m)
	return nil
}

func (r *CandidateDocumentRepositoryImpl) FindByCandidateId(ctx context.Context, candidateId uuid.UUID) (*entity.CandidateDocument, error) {
	var m model.CandidateDocument
	err := r.db.WithContext(ctx).Where("candidate_id = ?", candidateId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DocumentToEntity(&m), nil
}
