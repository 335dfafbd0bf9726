package embedding

import "context"

// Task types passed through to providers that distinguish asymmetric
// embedding use cases. Providers that do not support the hint ignore it.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// EmbeddingProvider generates a vector representation for a piece of text.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) ([]float32, error)
}
