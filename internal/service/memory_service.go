package service

import (
	"context"
	"time"

	"ai-recruiting-be/internal/dto"
	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/pkg/logger"
	"ai-recruiting-be/internal/repository/specification"
	"ai-recruiting-be/internal/repository/unitofwork"
	"ai-recruiting-be/pkg/embedding"

	"github.com/google/uuid"
)

const defaultMemorySearchLimit = 5

type IMemoryService interface {
	// GetOrCreateSession returns the caller's most recent session when it
	// was active inside the reuse window, otherwise starts a new one.
	GetOrCreateSession(ctx context.Context, orgId, userId uuid.UUID) (*entity.ChatSession, error)

	// SaveMessage appends a message and bumps the session counters in one
	// transaction. toolCalls, toolResults and metadata may be nil.
	SaveMessage(ctx context.Context, orgId, userId, sessionId uuid.UUID, role, content string, toolCalls, toolResults, metadata map[string]interface{}) (*entity.ChatMessage, error)

	// GetRecentMessages returns the newest n messages in chronological order.
	GetRecentMessages(ctx context.Context, sessionId uuid.UUID, n int) ([]*entity.ChatMessage, error)

	// SaveContextMemory stores a long-lived memory, embedding it when the
	// provider allows. A failed embedding stores the memory without a vector.
	SaveContextMemory(ctx context.Context, orgId, userId uuid.UUID, req *dto.SaveMemoryRequest) (*dto.SaveMemoryResponse, error)

	// SearchMemories ranks the caller's memories by vector similarity, or
	// falls back to lexical matching when no query vector is available.
	SearchMemories(ctx context.Context, orgId, userId uuid.UUID, query string, limit int) ([]*dto.MemorySearchResponseItem, error)

	// UpdateSessionSummary overwrites the session title and summary.
	// Idempotent; an empty title keeps the existing one.
	UpdateSessionSummary(ctx context.Context, orgId, userId, sessionId uuid.UUID, title, summary string) error

	// RecordAction appends an entry to the session's action log.
	RecordAction(ctx context.Context, orgId, userId, sessionId uuid.UUID, actionType string, detail map[string]interface{}) error

	ShowSession(ctx context.Context, orgId, userId, sessionId uuid.UUID, withMessages bool) (*dto.ShowSessionResponse, error)
}

type memoryService struct {
	uowFactory       unitofwork.RepositoryFactory
	embeddingService embedding.IEmbeddingService
	logger           logger.ILogger
	reuseWindow      time.Duration

	now func() time.Time
}

func NewMemoryService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingService embedding.IEmbeddingService,
	log logger.ILogger,
	reuseWindow time.Duration,
) IMemoryService {
	if reuseWindow <= 0 {
		reuseWindow = 24 * time.Hour
	}
	return &memoryService{
		uowFactory:       uowFactory,
		embeddingService: embeddingService,
		logger:           log,
		reuseWindow:      reuseWindow,
		now:              time.Now,
	}
}

func (s *memoryService) GetOrCreateSession(ctx context.Context, orgId, userId uuid.UUID) (*entity.ChatSession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.OwnedBy{OrgID: orgId, UserID: userId},
		specification.ActiveSince{Cutoff: now.Add(-s.reuseWindow)},
		specification.OrderBy{Field: "last_active_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if session != nil {
		// Reuse keeps the window sliding.
		if err := uow.ChatSessionRepository().Touch(ctx, session.Id, now); err != nil {
			return nil, err
		}
		session.LastActiveAt = now
		return session, nil
	}

	session = &entity.ChatSession{
		Id:           uuid.New(),
		OrgId:        orgId,
		UserId:       userId,
		StartedAt:    now,
		LastActiveAt: now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("MemoryService", "Started new chat session", map[string]interface{}{
		"session_id": session.Id,
		"user_id":    userId,
	})
	return session, nil
}

func (s *memoryService) SaveMessage(ctx context.Context, orgId, userId, sessionId uuid.UUID, role, content string, toolCalls, toolResults, metadata map[string]interface{}) (*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership check before writing anything.
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{OrgID: orgId, UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	msg := &entity.ChatMessage{
		Id:          uuid.New(),
		SessionId:   sessionId,
		Role:        role,
		Message:     content,
		ToolCalls:   toolCalls,
		ToolResults: toolResults,
		Metadata:    metadata,
		CreatedAt:   now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}
	if err := uow.ChatSessionRepository().BumpActivity(ctx, sessionId, 1, now); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *memoryService) GetRecentMessages(ctx context.Context, sessionId uuid.UUID, n int) ([]*entity.ChatMessage, error) {
	if n <= 0 {
		n = 10
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Newest first to apply the limit, then reversed for the prompt.
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: n},
	)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *memoryService) SaveContextMemory(ctx context.Context, orgId, userId uuid.UUID, req *dto.SaveMemoryRequest) (*dto.SaveMemoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	vector := s.embeddingService.EmbedOrNil(ctx, req.Content, embedding.TaskRetrievalDocument)
	if vector == nil {
		s.logger.Warn("MemoryService", "Storing memory without embedding", map[string]interface{}{
			"user_id":     userId,
			"memory_type": req.MemoryType,
		})
	}

	memory := &entity.ContextMemory{
		Id:         uuid.New(),
		OrgId:      orgId,
		UserId:     userId,
		SessionId:  req.SessionId,
		MemoryType: req.MemoryType,
		Content:    req.Content,
		Embedding:  vector,
		RelatedIds: req.RelatedIds,
		Metadata:   req.Metadata,
		CreatedAt:  s.now(),
	}

	if err := uow.ContextMemoryRepository().Create(ctx, memory); err != nil {
		return nil, err
	}

	return &dto.SaveMemoryResponse{
		Id:       memory.Id,
		Embedded: vector != nil,
	}, nil
}

func (s *memoryService) SearchMemories(ctx context.Context, orgId, userId uuid.UUID, query string, limit int) ([]*dto.MemorySearchResponseItem, error) {
	if limit <= 0 {
		limit = defaultMemorySearchLimit
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	queryVector, err := s.embeddingService.EmbedQueryCached(ctx, query)
	if err != nil || len(queryVector) == 0 {
		s.logger.Warn("MemoryService", "Falling back to lexical memory search", map[string]interface{}{
			"user_id": userId,
		})
		memories, lexErr := uow.ContextMemoryRepository().SearchLexical(ctx, orgId, userId, query, limit)
		if lexErr != nil {
			return nil, lexErr
		}

		items := make([]*dto.MemorySearchResponseItem, 0, len(memories))
		for _, m := range memories {
			items = append(items, &dto.MemorySearchResponseItem{
				Id:         m.Id,
				MemoryType: m.MemoryType,
				Content:    m.Content,
				CreatedAt:  m.CreatedAt,
			})
		}
		return items, nil
	}

	scored, err := uow.ContextMemoryRepository().SearchSimilar(ctx, orgId, userId, queryVector, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.MemorySearchResponseItem, 0, len(scored))
	for _, sm := range scored {
		similarity := 1 - sm.Distance
		items = append(items, &dto.MemorySearchResponseItem{
			Id:         sm.Memory.Id,
			MemoryType: sm.Memory.MemoryType,
			Content:    sm.Memory.Content,
			Score:      &similarity,
			CreatedAt:  sm.Memory.CreatedAt,
		})
	}
	return items, nil
}

func (s *memoryService) UpdateSessionSummary(ctx context.Context, orgId, userId, sessionId uuid.UUID, title, summary string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{OrgID: orgId, UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	if title != "" {
		session.Title = title
	}
	session.Summary = summary
	session.LastActiveAt = s.now()
	return uow.ChatSessionRepository().Update(ctx, session)
}

func (s *memoryService) RecordAction(ctx context.Context, orgId, userId, sessionId uuid.UUID, actionType string, detail map[string]interface{}) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{OrgID: orgId, UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	session.ActionsTaken = append(session.ActionsTaken, entity.Action{
		Type:       actionType,
		Detail:     detail,
		OccurredAt: s.now(),
	})
	session.LastActiveAt = s.now()
	return uow.ChatSessionRepository().Update(ctx, session)
}

func (s *memoryService) ShowSession(ctx context.Context, orgId, userId, sessionId uuid.UUID, withMessages bool) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedBy{OrgID: orgId, UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	res := &dto.ShowSessionResponse{
		Id:             session.Id,
		Title:          session.Title,
		Summary:        session.Summary,
		MessageCount:   session.MessageCount,
		CandidateCount: session.CandidateCount,
		StartedAt:      session.StartedAt,
		LastActiveAt:   session.LastActiveAt,
	}
	for _, a := range session.ActionsTaken {
		res.Actions = append(res.Actions, dto.SessionAction{
			Type:       a.Type,
			Detail:     a.Detail,
			OccurredAt: a.OccurredAt,
		})
	}

	if withMessages {
		messages, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.OrderBy{Field: "created_at", Desc: false},
		)
		if err != nil {
			return nil, err
		}
		for _, m := range messages {
			res.Messages = append(res.Messages, dto.ChatMessageDto{
				Id:        m.Id,
				Role:      m.Role,
				Message:   m.Message,
				Metadata:  m.Metadata,
				CreatedAt: m.CreatedAt,
			})
		}
	}

	return res, nil
}
