package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// maxEmbedInputChars caps the text sent to a provider. Long documents
	// are chunked upstream; this is the safety net for single calls.
	maxEmbedInputChars = 8000

	// DefaultQueryCacheTTL bounds how long a query embedding is reused.
	DefaultQueryCacheTTL = 10 * time.Minute
)

type IEmbeddingService interface {
	// Embed returns the vector for text, or an error when the provider is
	// unavailable or rejects the call.
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)

	// EmbedOrNil is the lenient variant used on write paths where a missing
	// vector degrades the record instead of failing the operation.
	EmbedOrNil(ctx context.Context, text string, taskType string) []float32

	// EmbedBatch embeds each text best-effort and returns the vectors that
	// succeeded, keyed by the truncated input text. Empty inputs are
	// filtered out; failures are skipped, never fatal.
	EmbedBatch(ctx context.Context, texts []string, taskType string) map[string][]float32

	// EmbedQueryCached embeds a search query, reusing a recent vector for
	// the same normalized query text.
	EmbedQueryCached(ctx context.Context, query string) ([]float32, error)
}

type EmbeddingService struct {
	provider EmbeddingProvider

	queryCache *gocache.Cache
}

func NewEmbeddingService(provider EmbeddingProvider, queryCacheTTL time.Duration) IEmbeddingService {
	if queryCacheTTL <= 0 {
		queryCacheTTL = DefaultQueryCacheTTL
	}
	return &EmbeddingService{
		provider:   provider,
		queryCache: gocache.New(queryCacheTTL, time.Minute),
	}
}

func (s *EmbeddingService) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("embedding input is empty")
	}
	if s.provider == nil {
		return nil, fmt.Errorf("no embedding provider configured")
	}
	if len(text) > maxEmbedInputChars {
		text = text[:maxEmbedInputChars]
	}

	values, err := s.provider.Generate(ctx, text, taskType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("provider returned empty embedding")
	}
	return values, nil
}

func (s *EmbeddingService) EmbedOrNil(ctx context.Context, text string, taskType string) []float32 {
	values, err := s.Embed(ctx, text, taskType)
	if err != nil {
		return nil
	}
	return values
}

func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string, taskType string) map[string][]float32 {
	vectors := make(map[string][]float32)
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if len(text) > maxEmbedInputChars {
			text = text[:maxEmbedInputChars]
		}
		values, err := s.Embed(ctx, text, taskType)
		if err != nil {
			continue
		}
		vectors[text] = values
	}
	return vectors
}

func (s *EmbeddingService) EmbedQueryCached(ctx context.Context, query string) ([]float32, error) {
	key := normalizeQueryKey(query)
	if cached, found := s.queryCache.Get(key); found {
		return cached.([]float32), nil
	}

	values, err := s.Embed(ctx, query, TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	s.queryCache.SetDefault(key, values)
	return values, nil
}

// normalizeQueryKey folds trivially different spellings of the same query
// onto one cache entry.
func normalizeQueryKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}
