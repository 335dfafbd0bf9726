package mapper

import (
	"time"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CandidateMapper struct{}

func NewCandidateMapper() *CandidateMapper {
	return &CandidateMapper{}
}

func (m *CandidateMapper) ToEntity(c *model.Candidate) *entity.Candidate {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Candidate{
		Id:          c.Id,
		OrgId:       c.OrgId,
		FullName:    c.FullName,
		Email:       c.Email,
		ParseStatus: c.ParseStatus,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   c.DeletedAt.Valid,
	}
}

func (m *CandidateMapper) ToModel(c *entity.Candidate) *model.Candidate {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Candidate{
		Id:          c.Id,
		OrgId:       c.OrgId,
		FullName:    c.FullName,
		Email:       c.Email,
		ParseStatus: c.ParseStatus,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

// Document Mappers

func (m *CandidateMapper) DocumentToEntity(d *model.CandidateDocument) *entity.CandidateDocument {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.CandidateDocument{
		Id:            d.Id,
		CandidateId:   d.CandidateId,
		Text:          d.Text,
		PageCount:     d.PageCount,
		TokenCount:    d.TokenCount,
		Confidence:    d.Confidence,
		ExtractMethod: d.ExtractMethod,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *CandidateMapper) DocumentToModel(d *entity.CandidateDocument) *model.CandidateDocument {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.CandidateDocument{
		Id:            d.Id,
		CandidateId:   d.CandidateId,
		Text:          d.Text,
		PageCount:     d.PageCount,
		TokenCount:    d.TokenCount,
		Confidence:    d.Confidence,
		ExtractMethod: d.ExtractMethod,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

// Embedding Mappers

func (m *CandidateMapper) EmbeddingToEntity(e *model.CandidateEmbedding) *entity.CandidateEmbedding {
	if e == nil {
		return nil
	}

	return &entity.CandidateEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CandidateId:    e.CandidateId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *CandidateMapper) EmbeddingToModel(e *entity.CandidateEmbedding) *model.CandidateEmbedding {
	if e == nil {
		return nil
	}

	return &model.CandidateEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CandidateId:    e.CandidateId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}
