package unitofwork

import (
	"context"

	"ai-recruiting-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CandidateRepository() contract.CandidateRepository
	CandidateDocumentRepository() contract.CandidateDocumentRepository
	CandidateEmbeddingRepository() contract.CandidateEmbeddingRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ContextMemoryRepository() contract.ContextMemoryRepository
}
