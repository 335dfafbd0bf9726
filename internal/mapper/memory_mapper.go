package mapper

import (
	"encoding/json"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type MemoryMapper struct{}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

func (m *MemoryMapper) ToEntity(mem *model.ContextMemory) *entity.ContextMemory {
	if mem == nil {
		return nil
	}

	var embedding []float32
	if mem.Embedding != nil {
		embedding = mem.Embedding.Slice()
	}

	var relatedIds []string
	if len(mem.RelatedIds) > 0 {
		_ = json.Unmarshal(mem.RelatedIds, &relatedIds)
	}

	return &entity.ContextMemory{
		Id:         mem.Id,
		OrgId:      mem.OrgId,
		UserId:     mem.UserId,
		SessionId:  mem.SessionId,
		MemoryType: mem.MemoryType,
		Content:    mem.Content,
		Embedding:  embedding,
		RelatedIds: relatedIds,
		Metadata:   jsonToMap(mem.Metadata),
		CreatedAt:  mem.CreatedAt,
	}
}

func (m *MemoryMapper) ToModel(mem *entity.ContextMemory) *model.ContextMemory {
	if mem == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(mem.Embedding) > 0 {
		v := pgvector.NewVector(mem.Embedding)
		embedding = &v
	}

	var relatedIds datatypes.JSON
	if mem.RelatedIds != nil {
		if raw, err := json.Marshal(mem.RelatedIds); err == nil {
			relatedIds = raw
		}
	}

	return &model.ContextMemory{
		Id:         mem.Id,
		OrgId:      mem.OrgId,
		UserId:     mem.UserId,
		SessionId:  mem.SessionId,
		MemoryType: mem.MemoryType,
		Content:    mem.Content,
		Embedding:  embedding,
		RelatedIds: relatedIds,
		Metadata:   mapToJSON(mem.Metadata),
		CreatedAt:  mem.CreatedAt,
	}
}

func (m *MemoryMapper) ToEntities(models []*model.ContextMemory) []*entity.ContextMemory {
	entities := make([]*entity.ContextMemory, len(models))
	for i, mem := range models {
		entities[i] = m.ToEntity(mem)
	}
	return entities
}
