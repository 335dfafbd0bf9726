package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"ai-recruiting-be/internal/dto"
	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/repository/contract"
	"ai-recruiting-be/internal/repository/specification"
	"ai-recruiting-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory fakes. They interpret the specification types the service
// actually uses so ownership and window filters are exercised for real. ---

type fakeSessionRepo struct {
	sessions []*entity.ChatSession
	created  int
}

func (r *fakeSessionRepo) matches(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.OwnedBy:
			if s.OrgId != sp.OrgID || s.UserId != sp.UserID {
				return false
			}
		case specification.ActiveSince:
			if s.LastActiveAt.Before(sp.Cutoff) {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.created++
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	for i, s := range r.sessions {
		if s.Id == session.Id {
			r.sessions[i] = session
			return nil
		}
	}
	return fmt.Errorf("session not found")
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var hits []*entity.ChatSession
	for _, s := range r.sessions {
		if r.matches(s, specs) {
			hits = append(hits, s)
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].LastActiveAt.After(hits[j].LastActiveAt) })
	return hits[0], nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var hits []*entity.ChatSession
	for _, s := range r.sessions {
		if r.matches(s, specs) {
			hits = append(hits, s)
		}
	}
	return hits, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	hits, _ := r.FindAll(ctx, specs...)
	return int64(len(hits)), nil
}

func (r *fakeSessionRepo) BumpActivity(ctx context.Context, sessionId uuid.UUID, messageDelta int, at time.Time) error {
	for _, s := range r.sessions {
		if s.Id == sessionId {
			s.MessageCount += messageDelta
			s.LastActiveAt = at
			return nil
		}
	}
	return fmt.Errorf("session not found")
}

func (r *fakeSessionRepo) Touch(ctx context.Context, sessionId uuid.UUID, at time.Time) error {
	for _, s := range r.sessions {
		if s.Id == sessionId {
			s.LastActiveAt = at
			return nil
		}
	}
	return fmt.Errorf("session not found")
}

type fakeMessageRepo struct {
	messages []*entity.ChatMessage
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var hits []*entity.ChatMessage
	limit := 0
	desc := false
	for _, spec := range specs {
		if sp, ok := spec.(specification.Limit); ok {
			limit = sp.N
		}
		if sp, ok := spec.(specification.OrderBy); ok && sp.Desc {
			desc = true
		}
	}
	for _, m := range r.messages {
		keep := true
		for _, spec := range specs {
			if sp, ok := spec.(specification.BySessionID); ok && m.SessionId != sp.SessionID {
				keep = false
			}
		}
		if keep {
			hits = append(hits, m)
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if desc {
			return hits[i].CreatedAt.After(hits[j].CreatedAt)
		}
		return hits[i].CreatedAt.Before(hits[j].CreatedAt)
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	hits, _ := r.FindAll(ctx, specs...)
	return int64(len(hits)), nil
}

type fakeMemoryRepo struct {
	memories      []*entity.ContextMemory
	similarCalled bool
	lexicalCalled bool
}

func (r *fakeMemoryRepo) Create(ctx context.Context, memory *entity.ContextMemory) error {
	r.memories = append(r.memories, memory)
	return nil
}

func (r *fakeMemoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContextMemory, error) {
	return r.memories, nil
}

func (r *fakeMemoryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.memories)), nil
}

func (r *fakeMemoryRepo) SearchSimilar(ctx context.Context, orgId, userId uuid.UUID, embedding []float32, limit int) ([]*contract.ScoredMemory, error) {
	r.similarCalled = true
	var scored []*contract.ScoredMemory
	for i, m := range r.memories {
		if m.OrgId != orgId || m.UserId != userId || len(m.Embedding) == 0 {
			continue
		}
		scored = append(scored, &contract.ScoredMemory{Memory: m, Distance: float64(i) * 0.1})
	}
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (r *fakeMemoryRepo) SearchLexical(ctx context.Context, orgId, userId uuid.UUID, query string, limit int) ([]*entity.ContextMemory, error) {
	r.lexicalCalled = true
	var hits []*entity.ContextMemory
	for _, m := range r.memories {
		if m.OrgId == orgId && m.UserId == userId && strings.Contains(strings.ToLower(m.Content), strings.ToLower(query)) {
			hits = append(hits, m)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].CreatedAt.After(hits[j].CreatedAt) })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

type fakeUow struct {
	sessions *fakeSessionRepo
	messages *fakeMessageRepo
	memories *fakeMemoryRepo

	begun     int
	committed int
	rolled    int
}

func (u *fakeUow) Begin(ctx context.Context) error { u.begun++; return nil }
func (u *fakeUow) Commit() error                   { u.committed++; return nil }
func (u *fakeUow) Rollback() error                 { u.rolled++; return nil }

func (u *fakeUow) CandidateRepository() contract.CandidateRepository                   { return nil }
func (u *fakeUow) CandidateDocumentRepository() contract.CandidateDocumentRepository   { return nil }
func (u *fakeUow) CandidateEmbeddingRepository() contract.CandidateEmbeddingRepository { return nil }
func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository               { return u.sessions }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository               { return u.messages }
func (u *fakeUow) ContextMemoryRepository() contract.ContextMemoryRepository           { return u.memories }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeEmbeddingService struct {
	vector []float32
	fail   bool
}

func (s *fakeEmbeddingService) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if s.fail {
		return nil, fmt.Errorf("provider unavailable")
	}
	return s.vector, nil
}

func (s *fakeEmbeddingService) EmbedOrNil(ctx context.Context, text, taskType string) []float32 {
	v, err := s.Embed(ctx, text, taskType)
	if err != nil {
		return nil
	}
	return v
}

func (s *fakeEmbeddingService) EmbedBatch(ctx context.Context, texts []string, taskType string) map[string][]float32 {
	out := make(map[string][]float32)
	if s.fail {
		return out
	}
	for _, text := range texts {
		out[text] = s.vector
	}
	return out
}

func (s *fakeEmbeddingService) EmbedQueryCached(ctx context.Context, query string) ([]float32, error) {
	return s.Embed(ctx, query, "RETRIEVAL_QUERY")
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// --- Test helpers ---

func newTestMemoryService(embedFail bool) (*memoryService, *fakeUow, *fakeEmbeddingService) {
	uow := &fakeUow{
		sessions: &fakeSessionRepo{},
		messages: &fakeMessageRepo{},
		memories: &fakeMemoryRepo{},
	}
	embedSvc := &fakeEmbeddingService{vector: []float32{0.1, 0.2}, fail: embedFail}
	svc := NewMemoryService(&fakeFactory{uow: uow}, embedSvc, noopLogger{}, 24*time.Hour).(*memoryService)
	return svc, uow, embedSvc
}

var (
	testOrgId  = uuid.New()
	testUserId = uuid.New()
)

func TestGetOrCreateSessionReusesRecentSession(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	existing := &entity.ChatSession{
		Id:           uuid.New(),
		OrgId:        testOrgId,
		UserId:       testUserId,
		StartedAt:    now.Add(-23 * time.Hour),
		LastActiveAt: now.Add(-23 * time.Hour),
	}
	uow.sessions.sessions = append(uow.sessions.sessions, existing)

	session, err := svc.GetOrCreateSession(context.Background(), testOrgId, testUserId)
	require.NoError(t, err)
	assert.Equal(t, existing.Id, session.Id)
	assert.Equal(t, 0, uow.sessions.created)
	assert.Equal(t, now, session.LastActiveAt, "reuse slides the recency window")
}

func TestGetOrCreateSessionStartsFreshAfterWindow(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	stale := &entity.ChatSession{
		Id:           uuid.New(),
		OrgId:        testOrgId,
		UserId:       testUserId,
		LastActiveAt: now.Add(-25 * time.Hour),
	}
	uow.sessions.sessions = append(uow.sessions.sessions, stale)

	session, err := svc.GetOrCreateSession(context.Background(), testOrgId, testUserId)
	require.NoError(t, err)
	assert.NotEqual(t, stale.Id, session.Id)
	assert.Equal(t, 1, uow.sessions.created)
	assert.Equal(t, now, session.StartedAt)
}

func TestGetOrCreateSessionIgnoresOtherUsers(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)

	other := &entity.ChatSession{
		Id:           uuid.New(),
		OrgId:        testOrgId,
		UserId:       uuid.New(),
		LastActiveAt: time.Now(),
	}
	uow.sessions.sessions = append(uow.sessions.sessions, other)

	session, err := svc.GetOrCreateSession(context.Background(), testOrgId, testUserId)
	require.NoError(t, err)
	assert.NotEqual(t, other.Id, session.Id)
	assert.Equal(t, 1, uow.sessions.created)
}

func TestSaveMessageBumpsSessionCounters(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	session := &entity.ChatSession{
		Id:           uuid.New(),
		OrgId:        testOrgId,
		UserId:       testUserId,
		MessageCount: 4,
		LastActiveAt: now.Add(-time.Hour),
	}
	uow.sessions.sessions = append(uow.sessions.sessions, session)

	msg, err := svc.SaveMessage(context.Background(), testOrgId, testUserId, session.Id, "user", "find golang engineers", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "find golang engineers", msg.Message)
	assert.Equal(t, 5, session.MessageCount)
	assert.Equal(t, now, session.LastActiveAt)
	assert.Equal(t, 1, uow.begun)
	assert.Equal(t, 1, uow.committed)
}

func TestSaveMessageRejectsForeignSession(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)

	foreign := &entity.ChatSession{
		Id:     uuid.New(),
		OrgId:  uuid.New(),
		UserId: uuid.New(),
	}
	uow.sessions.sessions = append(uow.sessions.sessions, foreign)

	_, err := svc.SaveMessage(context.Background(), testOrgId, testUserId, foreign.Id, "user", "hi", nil, nil, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, uow.messages.messages)
}

func TestGetRecentMessagesNewestNChronological(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)
	sessionId := uuid.New()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		uow.messages.messages = append(uow.messages.messages, &entity.ChatMessage{
			Id:        uuid.New(),
			SessionId: sessionId,
			Message:   fmt.Sprintf("m%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	messages, err := svc.GetRecentMessages(context.Background(), sessionId, 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "m2", messages[0].Message)
	assert.Equal(t, "m3", messages[1].Message)
	assert.Equal(t, "m4", messages[2].Message)
}

func TestSaveContextMemoryWithEmbedding(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)

	res, err := svc.SaveContextMemory(context.Background(), testOrgId, testUserId, &dto.SaveMemoryRequest{
		MemoryType: "preference",
		Content:    "prefers remote candidates",
	})
	require.NoError(t, err)
	assert.True(t, res.Embedded)
	require.Len(t, uow.memories.memories, 1)
	assert.NotEmpty(t, uow.memories.memories[0].Embedding)
}

func TestSaveContextMemoryDegradesWithoutProvider(t *testing.T) {
	svc, uow, _ := newTestMemoryService(true)

	res, err := svc.SaveContextMemory(context.Background(), testOrgId, testUserId, &dto.SaveMemoryRequest{
		MemoryType: "fact",
		Content:    "hiring freeze until April",
	})
	require.NoError(t, err, "a failed embedding must not fail the save")
	assert.False(t, res.Embedded)
	require.Len(t, uow.memories.memories, 1)
	assert.Empty(t, uow.memories.memories[0].Embedding)
}

func TestSearchMemoriesVectorPath(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)

	uow.memories.memories = append(uow.memories.memories, &entity.ContextMemory{
		Id:         uuid.New(),
		OrgId:      testOrgId,
		UserId:     testUserId,
		MemoryType: "preference",
		Content:    "prefers startup experience",
		Embedding:  []float32{0.3, 0.4},
	})

	items, err := svc.SearchMemories(context.Background(), testOrgId, testUserId, "startup", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, uow.memories.similarCalled)
	assert.False(t, uow.memories.lexicalCalled)
	require.NotNil(t, items[0].Score)
	assert.InDelta(t, 1.0, *items[0].Score, 1e-9, "distance 0 maps to similarity 1")
}

func TestSearchMemoriesLexicalFallback(t *testing.T) {
	svc, uow, _ := newTestMemoryService(true)

	uow.memories.memories = append(uow.memories.memories, &entity.ContextMemory{
		Id:         uuid.New(),
		OrgId:      testOrgId,
		UserId:     testUserId,
		MemoryType: "fact",
		Content:    "the Berlin office hires in Q3",
		CreatedAt:  time.Now(),
	})

	items, err := svc.SearchMemories(context.Background(), testOrgId, testUserId, "berlin", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, uow.memories.lexicalCalled)
	assert.False(t, uow.memories.similarCalled)
	assert.Nil(t, items[0].Score, "lexical hits carry no similarity score")
}

func TestRecordActionAppends(t *testing.T) {
	svc, uow, _ := newTestMemoryService(false)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	session := &entity.ChatSession{
		Id:     uuid.New(),
		OrgId:  testOrgId,
		UserId: testUserId,
	}
	uow.sessions.sessions = append(uow.sessions.sessions, session)

	err := svc.RecordAction(context.Background(), testOrgId, testUserId, session.Id, "candidate_search", map[string]interface{}{"query": "golang"})
	require.NoError(t, err)

	stored, _ := uow.sessions.FindOne(context.Background(), specification.ByID{ID: session.Id})
	require.Len(t, stored.ActionsTaken, 1)
	assert.Equal(t, "candidate_search", stored.ActionsTaken[0].Type)
	assert.Equal(t, now, stored.ActionsTaken[0].OccurredAt)
}
