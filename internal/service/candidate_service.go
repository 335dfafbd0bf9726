package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-recruiting-be/internal/constant"
	"ai-recruiting-be/internal/dto"
	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/pkg/logger"
	"ai-recruiting-be/internal/repository/specification"
	"ai-recruiting-be/internal/repository/unitofwork"
	"ai-recruiting-be/pkg/events"
	"ai-recruiting-be/pkg/extract"
	pktNats "ai-recruiting-be/pkg/nats"
	"ai-recruiting-be/pkg/rag/search"

	"github.com/google/uuid"
)

const searchSnippetLength = 200

type ICandidateService interface {
	Create(ctx context.Context, orgId uuid.UUID, req *dto.CreateCandidateRequest) (*dto.CreateCandidateResponse, error)
	Show(ctx context.Context, orgId, candidateId uuid.UUID) (*dto.ShowCandidateResponse, error)

	// UploadDocument runs the extraction pipeline synchronously, stores the
	// text, and queues the embedding job. Parse status transitions are
	// published as NATS events at every step.
	UploadDocument(ctx context.Context, orgId, userId, candidateId uuid.UUID, data []byte, mimeType string) (*dto.UploadDocumentResponse, error)

	SemanticSearch(ctx context.Context, orgId uuid.UUID, query string) ([]*dto.SemanticSearchCandidateResponse, error)
}

type candidateService struct {
	uowFactory         unitofwork.RepositoryFactory
	pipeline           *extract.Pipeline
	publisherService   IPublisherService
	eventPublisher     *pktNats.Publisher
	searchOrchestrator *search.Orchestrator
	logger             logger.ILogger
}

func NewCandidateService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline *extract.Pipeline,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	searchOrchestrator *search.Orchestrator,
	log logger.ILogger,
) ICandidateService {
	return &candidateService{
		uowFactory:         uowFactory,
		pipeline:           pipeline,
		publisherService:   publisherService,
		eventPublisher:     eventPublisher,
		searchOrchestrator: searchOrchestrator,
		logger:             log,
	}
}

func (s *candidateService) Create(ctx context.Context, orgId uuid.UUID, req *dto.CreateCandidateRequest) (*dto.CreateCandidateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	candidate := entity.Candidate{
		Id:          uuid.New(),
		OrgId:       orgId,
		FullName:    req.FullName,
		Email:       req.Email,
		ParseStatus: constant.ParseStatusQueued,
		CreatedAt:   time.Now(),
	}

	if err := uow.CandidateRepository().Create(ctx, &candidate); err != nil {
		return nil, err
	}

	return &dto.CreateCandidateResponse{Id: candidate.Id}, nil
}

func (s *candidateService) Show(ctx context.Context, orgId, candidateId uuid.UUID) (*dto.ShowCandidateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	candidate, err := uow.CandidateRepository().FindOne(ctx,
		specification.ByID{ID: candidateId},
		specification.ByOrgID{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrCandidateNotFound
	}

	res := &dto.ShowCandidateResponse{
		Id:          candidate.Id,
		FullName:    candidate.FullName,
		Email:       candidate.Email,
		ParseStatus: candidate.ParseStatus,
		CreatedAt:   candidate.CreatedAt,
		UpdatedAt:   candidate.UpdatedAt,
	}

	document, err := uow.CandidateDocumentRepository().FindByCandidateId(ctx, candidateId)
	if err != nil {
		return nil, err
	}
	if document != nil {
		res.Document = &dto.CandidateDocumentDto{
			Text:          document.Text,
			PageCount:     document.PageCount,
			TokenCount:    document.TokenCount,
			Confidence:    document.Confidence,
			ExtractMethod: document.ExtractMethod,
			CreatedAt:     document.CreatedAt,
		}
	}

	return res, nil
}

func (s *candidateService) UploadDocument(ctx context.Context, orgId, userId, candidateId uuid.UUID, data []byte, mimeType string) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	candidate, err := uow.CandidateRepository().FindOne(ctx,
		specification.ByID{ID: candidateId},
		specification.ByOrgID{OrgID: orgId},
	)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, ErrCandidateNotFound
	}

	s.setParseStatus(ctx, uow, orgId, userId, candidateId, constant.ParseStatusProcessing, "")

	result, err := s.pipeline.Extract(ctx, extract.Document{Data: data, MimeType: mimeType})
	if err != nil {
		s.setParseStatus(ctx, uow, orgId, userId, candidateId, constant.ParseStatusError, err.Error())
		return nil, err
	}

	now := time.Now()
	document := &entity.CandidateDocument{
		Id:            uuid.New(),
		CandidateId:   candidateId,
		Text:          result.Text,
		PageCount:     result.PageCount,
		TokenCount:    result.TokenCount,
		Confidence:    result.Confidence,
		ExtractMethod: result.Method,
		CreatedAt:     now,
		UpdatedAt:     &now,
	}
	if err := uow.CandidateDocumentRepository().Upsert(ctx, document); err != nil {
		s.setParseStatus(ctx, uow, orgId, userId, candidateId, constant.ParseStatusError, "failed to store document")
		return nil, err
	}

	s.setParseStatus(ctx, uow, orgId, userId, candidateId, constant.ParseStatusDone, "")

	s.logger.Info("CandidateService", "Document extracted", map[string]interface{}{
		"candidate_id": candidateId,
		"method":       result.Method,
		"token_count":  result.TokenCount,
	})

	// Embedding happens asynchronously; the upload response does not wait.
	msgPayload := dto.PublishEmbedCandidateMessage{CandidateId: candidateId}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.UploadDocumentResponse{
		CandidateId: candidateId,
		ParseStatus: constant.ParseStatusDone,
	}, nil
}

// setParseStatus persists the transition and broadcasts it. Event delivery
// is auxiliary; a publish failure never fails the upload.
func (s *candidateService) setParseStatus(ctx context.Context, uow unitofwork.UnitOfWork, orgId, userId, candidateId uuid.UUID, status, detail string) {
	if err := uow.CandidateRepository().UpdateParseStatus(ctx, candidateId, status); err != nil {
		s.logger.Error("CandidateService", "Failed to update parse status", map[string]interface{}{
			"candidate_id": candidateId,
			"status":       status,
			"error":        err.Error(),
		})
	}

	if s.eventPublisher != nil {
		evt := events.NewCandidateParseStatusEvent(orgId, userId, candidateId, status, detail)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("CandidateService", "Failed to publish parse status event", map[string]interface{}{
				"candidate_id": candidateId,
				"error":        err.Error(),
			})
		}
	}
}

func (s *candidateService) SemanticSearch(ctx context.Context, orgId uuid.UUID, query string) ([]*dto.SemanticSearchCandidateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := s.searchOrchestrator.Execute(ctx, uow, orgId, query, search.DefaultConfig())
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SemanticSearchCandidateResponse, 0, len(documents))
	for _, doc := range documents {
		candidateId, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}

		snippet := doc.Content
		if len(snippet) > searchSnippetLength {
			snippet = snippet[:searchSnippetLength]
		}

		results = append(results, &dto.SemanticSearchCandidateResponse{
			Id:       candidateId,
			FullName: doc.Name,
			Score:    doc.Score,
			Snippet:  snippet,
		})
	}
	return results, nil
}
