package search

import (
	"context"
	"fmt"
	"log"

	"ai-recruiting-be/internal/repository/contract"
	"ai-recruiting-be/internal/repository/specification"
	"ai-recruiting-be/internal/repository/unitofwork"
	"ai-recruiting-be/pkg/embedding"
	"ai-recruiting-be/pkg/store"

	"github.com/google/uuid"
)

// Orchestrator handles vector search over candidate documents
type Orchestrator struct {
	embeddingService embedding.IEmbeddingService
	logger           *log.Logger
}

func NewOrchestrator(embeddingService embedding.IEmbeddingService, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		embeddingService: embeddingService,
		logger:           logger,
	}
}

// Config encapsulates search parameters
type Config struct {
	DBThreshold    float64
	LogicThreshold float64
	TopK           int
}

func DefaultConfig() Config {
	return Config{
		DBThreshold:    0.0,
		LogicThreshold: 0.35,
		TopK:           10,
	}
}

// Execute runs vector search and returns deduplicated candidate documents
func (o *Orchestrator) Execute(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	orgId uuid.UUID,
	query string,
	config Config,
) ([]store.Document, error) {

	queryVector, err := o.embeddingService.EmbedQueryCached(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scoredResults, err := uow.CandidateEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		orgId,
		queryVector,
		config.TopK,
		config.DBThreshold,
	)
	if err != nil {
		o.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	o.logger.Printf("[DEBUG] Raw search results: %d chunks", len(scoredResults))

	candidates := o.filterAndDeduplicate(scoredResults, config.LogicThreshold)

	o.logger.Printf("[DEBUG] Filtered candidates: %d", len(candidates))

	if err := o.hydrateCandidates(ctx, uow, candidates); err != nil {
		o.logger.Printf("[WARN] Failed to hydrate candidates: %v", err)
	}

	return candidates, nil
}

// filterAndDeduplicate keeps the best-scoring chunk per candidate. Results
// arrive ordered by similarity, so the first chunk seen for a candidate is
// its best one.
func (o *Orchestrator) filterAndDeduplicate(
	results []*contract.ScoredCandidateEmbedding,
	threshold float64,
) []store.Document {

	var candidates []store.Document
	seen := make(map[string]bool)

	for i, res := range results {
		if res.Similarity < threshold {
			o.logger.Printf("[DEBUG] Chunk %d: Score=%.4f [FILTERED]", i+1, res.Similarity)
			continue
		}

		candidateId := res.Embedding.CandidateId.String()
		if seen[candidateId] {
			continue
		}
		seen[candidateId] = true

		candidates = append(candidates, store.Document{
			ID:      candidateId,
			Content: res.Embedding.Document,
			Score:   float32(res.Similarity),
		})

		o.logger.Printf("[DEBUG] Chunk %d: Score=%.4f [KEEP]", i+1, res.Similarity)
	}

	return candidates
}

func (o *Orchestrator) hydrateCandidates(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	candidates []store.Document,
) error {

	if len(candidates) == 0 {
		return nil
	}

	candidateIds := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		candidateIds[i] = uuid.MustParse(c.ID)
	}

	records, err := uow.CandidateRepository().FindAll(ctx, specification.ByIDs{IDs: candidateIds})
	if err != nil {
		return err
	}

	nameMap := make(map[string]string)
	for _, record := range records {
		nameMap[record.Id.String()] = record.FullName
	}

	for i := range candidates {
		candidates[i].Name = nameMap[candidates[i].ID]
	}
	return nil
}
