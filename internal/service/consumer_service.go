package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ai-recruiting-be/internal/dto"
	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/repository/specification"
	"ai-recruiting-be/internal/repository/unitofwork"
	"ai-recruiting-be/pkg/embedding"
	"ai-recruiting-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	uowFactory       unitofwork.RepositoryFactory
	embeddingService embedding.IEmbeddingService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingService embedding.IEmbeddingService,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		uowFactory:       uowFactory,
		embeddingService: embeddingService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedCandidateMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for CandidateId: %s", payload.CandidateId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	candidate, err := uow.CandidateRepository().FindOne(ctx, specification.ByID{ID: payload.CandidateId})
	if err != nil {
		log.Printf("[ERROR] Failed to get candidate %s: %v", payload.CandidateId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if candidate == nil {
		log.Printf("[ERROR] Candidate not found: %s", payload.CandidateId)
		msg.Ack() // Candidate deleted? Ack.
		return
	}

	document, err := uow.CandidateDocumentRepository().FindByCandidateId(ctx, payload.CandidateId)
	if err != nil {
		log.Printf("[ERROR] Failed to get document for candidate %s: %v", payload.CandidateId, err)
		msg.Nack()
		return
	}
	if document == nil {
		log.Printf("[ERROR] No document stored for candidate %s", payload.CandidateId)
		msg.Ack()
		return
	}

	content := fmt.Sprintf(`Candidate: %s
Email: %s

%s

Extracted: %s via %s`,
		candidate.FullName,
		candidate.Email,
		document.Text,
		document.CreatedAt.Format(time.RFC3339),
		document.ExtractMethod,
	)

	log.Printf("[INFO] Generating embeddings for candidate %s (content length: %d)", payload.CandidateId, len(content))

	chunks := utils.SplitText(content, utils.DefaultChunkSize, utils.DefaultChunkOverlap)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.CandidateEmbedding

	for i, chunk := range chunks {
		values, err := cs.embeddingService.Embed(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of candidate %s: %v", i, payload.CandidateId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.CandidateEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: values,
			CandidateId:    candidate.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	// Old chunks go away in the same transaction so search never sees a
	// half-replaced document.
	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.CandidateEmbeddingRepository().DeleteByCandidateId(ctx, candidate.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.CandidateEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create bulk embeddings: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Candidate processed: %d chunks for CandidateId: %s", len(newEmbeddings), payload.CandidateId)
	msg.Ack()
}
