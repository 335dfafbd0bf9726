package service

import (
	"context"
	"strings"

	"ai-recruiting-be/internal/constant"
	"ai-recruiting-be/internal/dto"
	"ai-recruiting-be/internal/pkg/logger"
	"ai-recruiting-be/internal/repository/unitofwork"
	"ai-recruiting-be/pkg/llm"
	"ai-recruiting-be/pkg/rag/prompt"
	"ai-recruiting-be/pkg/rag/search"

	"github.com/google/uuid"
)

const chatHistoryDepth = 10

type IAssistantService interface {
	// Chat runs one conversational turn: session resolution, retrieval,
	// generation, and persistence of both sides of the exchange.
	Chat(ctx context.Context, orgId, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type assistantService struct {
	uowFactory         unitofwork.RepositoryFactory
	memoryService      IMemoryService
	searchOrchestrator *search.Orchestrator
	llmProvider        llm.LLMProvider
	logger             logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	memoryService IMemoryService,
	searchOrchestrator *search.Orchestrator,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		uowFactory:         uowFactory,
		memoryService:      memoryService,
		searchOrchestrator: searchOrchestrator,
		llmProvider:        llmProvider,
		logger:             log,
	}
}

func (s *assistantService) Chat(ctx context.Context, orgId, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	// 1. Resolve the session: explicit id wins, otherwise reuse-or-create.
	var sessionId uuid.UUID
	if req.SessionId != nil {
		sessionId = *req.SessionId
	} else {
		session, err := s.memoryService.GetOrCreateSession(ctx, orgId, userId)
		if err != nil {
			return nil, err
		}
		sessionId = session.Id
	}

	// 2. Persist the user turn before doing anything fallible.
	if _, err := s.memoryService.SaveMessage(ctx, orgId, userId, sessionId, constant.ChatMessageRoleUser, req.Message, nil, nil, nil); err != nil {
		return nil, err
	}

	// 3. Retrieve context. Both lookups are best-effort; an empty result
	// degrades the answer, it does not fail the turn.
	memories, err := s.memoryService.SearchMemories(ctx, orgId, userId, req.Message, defaultMemorySearchLimit)
	if err != nil {
		s.logger.Warn("AssistantService", "Memory search failed", map[string]interface{}{"error": err.Error()})
		memories = nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	candidates, err := s.searchOrchestrator.Execute(ctx, uow, orgId, req.Message, search.DefaultConfig())
	if err != nil {
		s.logger.Warn("AssistantService", "Candidate search failed", map[string]interface{}{"error": err.Error()})
		candidates = nil
	}

	// 4. Assemble the prompt from history + retrieved context.
	recentMessages, err := s.memoryService.GetRecentMessages(ctx, sessionId, chatHistoryDepth)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(recentMessages))
	for _, m := range recentMessages {
		history = append(history, llm.Message{Role: m.Role, Content: m.Message})
	}

	session, err := s.memoryService.ShowSession(ctx, orgId, userId, sessionId, false)
	if err != nil {
		return nil, err
	}

	memoryTexts := make([]string, 0, len(memories))
	for _, m := range memories {
		memoryTexts = append(memoryTexts, m.Content)
	}

	builtPrompt := prompt.NewContextualBuilder(candidates, memoryTexts, session.Summary, req.Message).Build()

	// The last history entry is the user turn we just saved; the built
	// prompt replaces it so retrieval context rides along.
	if len(history) > 0 {
		history = history[:len(history)-1]
	}
	history = append(history, llm.Message{Role: constant.ChatMessageRoleUser, Content: builtPrompt})

	reply, err := s.llmProvider.Chat(ctx, history)
	if err != nil {
		return nil, err
	}

	// 5. Persist the assistant turn with its sources.
	sources := make([]dto.ChatSourceDto, 0, len(candidates))
	sourceIds := make([]string, 0, len(candidates))
	for _, c := range candidates {
		id, parseErr := uuid.Parse(c.ID)
		if parseErr != nil {
			continue
		}
		sources = append(sources, dto.ChatSourceDto{
			CandidateId: id,
			FullName:    c.Name,
			Score:       c.Score,
		})
		sourceIds = append(sourceIds, c.ID)
	}

	var metadata map[string]interface{}
	if len(sourceIds) > 0 {
		metadata = map[string]interface{}{"source_candidate_ids": sourceIds}
	}
	if _, err := s.memoryService.SaveMessage(ctx, orgId, userId, sessionId, constant.ChatMessageRoleAssistant, reply, nil, nil, metadata); err != nil {
		return nil, err
	}

	// First exchange names the session after the opening question.
	if session.Title == "" {
		if err := s.memoryService.UpdateSessionSummary(ctx, orgId, userId, sessionId, deriveSessionTitle(req.Message), session.Summary); err != nil {
			s.logger.Warn("AssistantService", "Failed to set session title", map[string]interface{}{"error": err.Error()})
		}
	}

	if len(sources) > 0 {
		if err := s.memoryService.RecordAction(ctx, orgId, userId, sessionId, "candidate_search", map[string]interface{}{
			"query":     req.Message,
			"hit_count": len(sources),
		}); err != nil {
			s.logger.Warn("AssistantService", "Failed to record action", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ChatResponse{
		SessionId: sessionId,
		Reply:     reply,
		Sources:   sources,
		Memories:  dereferenceMemories(memories),
	}, nil
}

const maxSessionTitleLength = 80

func deriveSessionTitle(message string) string {
	title := strings.Join(strings.Fields(message), " ")
	if len(title) > maxSessionTitleLength {
		title = title[:maxSessionTitleLength]
	}
	return title
}

func dereferenceMemories(memories []*dto.MemorySearchResponseItem) []dto.MemorySearchResponseItem {
	out := make([]dto.MemorySearchResponseItem, 0, len(memories))
	for _, m := range memories {
		out = append(out, *m)
	}
	return out
}
