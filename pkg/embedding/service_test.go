package embedding

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingProvider struct {
	calls    int
	lastText string
	vector   []float32
	err      error
}

func (p *countingProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	p.calls++
	p.lastText = text
	if p.err != nil {
		return nil, p.err
	}
	return p.vector, nil
}

func TestEmbedTruncatesLongInput(t *testing.T) {
	provider := &countingProvider{vector: []float32{0.1, 0.2}}
	svc := NewEmbeddingService(provider, 0)

	_, err := svc.Embed(context.Background(), strings.Repeat("x", 20000), TaskRetrievalDocument)
	assert.NoError(t, err)
	assert.Len(t, provider.lastText, maxEmbedInputChars)
}

func TestEmbedRejectsEmptyInput(t *testing.T) {
	provider := &countingProvider{vector: []float32{0.1}}
	svc := NewEmbeddingService(provider, 0)

	_, err := svc.Embed(context.Background(), "   \n\t ", TaskRetrievalDocument)
	assert.Error(t, err)
	assert.Equal(t, 0, provider.calls, "no provider call for blank input")
}

func TestEmbedWithoutProvider(t *testing.T) {
	svc := NewEmbeddingService(nil, 0)

	_, err := svc.Embed(context.Background(), "some text", TaskRetrievalDocument)
	assert.Error(t, err)
	assert.Nil(t, svc.EmbedOrNil(context.Background(), "some text", TaskRetrievalDocument))
}

func TestEmbedOrNilSwallowsProviderError(t *testing.T) {
	provider := &countingProvider{err: fmt.Errorf("quota exhausted")}
	svc := NewEmbeddingService(provider, 0)

	assert.Nil(t, svc.EmbedOrNil(context.Background(), "resume text", TaskRetrievalDocument))
}

func TestEmbedBatchSkipsFailures(t *testing.T) {
	provider := &countingProvider{vector: []float32{1, 0}}
	svc := NewEmbeddingService(provider, 0)

	vectors := svc.EmbedBatch(context.Background(), []string{"first", "  ", "third"}, TaskRetrievalDocument)
	assert.Len(t, vectors, 2)
	assert.Contains(t, vectors, "first")
	assert.Contains(t, vectors, "third")
	assert.NotContains(t, vectors, "", "blank entry is filtered, not fatal")
}

func TestEmbedBatchAllFailing(t *testing.T) {
	provider := &countingProvider{err: fmt.Errorf("provider down")}
	svc := NewEmbeddingService(provider, 0)

	vectors := svc.EmbedBatch(context.Background(), []string{"a", "b"}, TaskRetrievalDocument)
	assert.Empty(t, vectors)
}

func TestEmbedQueryCachedReusesVector(t *testing.T) {
	provider := &countingProvider{vector: []float32{0.5, 0.5}}
	svc := NewEmbeddingService(provider, time.Minute)

	first, err := svc.EmbedQueryCached(context.Background(), "Golang  Engineers")
	assert.NoError(t, err)

	// Different casing and spacing hit the same cache entry.
	second, err := svc.EmbedQueryCached(context.Background(), "golang engineers")
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)
}

func TestEmbedQueryCachedExpires(t *testing.T) {
	provider := &countingProvider{vector: []float32{0.5}}
	svc := NewEmbeddingService(provider, 30*time.Millisecond)

	_, err := svc.EmbedQueryCached(context.Background(), "data engineers")
	assert.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = svc.EmbedQueryCached(context.Background(), "data engineers")
	assert.NoError(t, err)
	assert.Equal(t, 2, provider.calls, "expired entry triggers a fresh provider call")
}

func TestEmbedQueryCachedDoesNotCacheFailures(t *testing.T) {
	provider := &countingProvider{err: fmt.Errorf("transient")}
	svc := NewEmbeddingService(provider, time.Minute)

	_, err := svc.EmbedQueryCached(context.Background(), "react developers")
	assert.Error(t, err)

	provider.err = nil
	provider.vector = []float32{1}
	values, err := svc.EmbedQueryCached(context.Background(), "react developers")
	assert.NoError(t, err)
	assert.Equal(t, []float32{1}, values)
}
