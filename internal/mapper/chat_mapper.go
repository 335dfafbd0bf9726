package mapper

import (
	"encoding/json"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/model"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var actions []entity.Action
	if len(s.ActionsTaken) > 0 {
		// Corrupt action logs degrade to an empty list rather than failing reads.
		_ = json.Unmarshal(s.ActionsTaken, &actions)
	}

	return &entity.ChatSession{
		Id:             s.Id,
		OrgId:          s.OrgId,
		UserId:         s.UserId,
		Title:          s.Title,
		Summary:        s.Summary,
		MessageCount:   s.MessageCount,
		CandidateCount: s.CandidateCount,
		ActionsTaken:   actions,
		StartedAt:      s.StartedAt,
		LastActiveAt:   s.LastActiveAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var actions datatypes.JSON
	if s.ActionsTaken != nil {
		if raw, err := json.Marshal(s.ActionsTaken); err == nil {
			actions = raw
		}
	}

	return &model.ChatSession{
		Id:             s.Id,
		OrgId:          s.OrgId,
		UserId:         s.UserId,
		Title:          s.Title,
		Summary:        s.Summary,
		MessageCount:   s.MessageCount,
		CandidateCount: s.CandidateCount,
		ActionsTaken:   actions,
		StartedAt:      s.StartedAt,
		LastActiveAt:   s.LastActiveAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	return &entity.ChatMessage{
		Id:          msg.Id,
		SessionId:   msg.SessionId,
		Role:        msg.Role,
		Message:     msg.Message,
		ToolCalls:   jsonToMap(msg.ToolCalls),
		ToolResults: jsonToMap(msg.ToolResults),
		Metadata:    jsonToMap(msg.Metadata),
		CreatedAt:   msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	return &model.ChatMessage{
		Id:          msg.Id,
		SessionId:   msg.SessionId,
		Role:        msg.Role,
		Message:     msg.Message,
		ToolCalls:   mapToJSON(msg.ToolCalls),
		ToolResults: mapToJSON(msg.ToolResults),
		Metadata:    mapToJSON(msg.Metadata),
		CreatedAt:   msg.CreatedAt,
	}
}

func jsonToMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func mapToJSON(in map[string]interface{}) datatypes.JSON {
	if in == nil {
		return nil
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return nil
	}
	return raw
}
