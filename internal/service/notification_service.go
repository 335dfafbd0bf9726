package service

import (
	"context"
	"time"

	"ai-recruiting-be/internal/dto"
	"ai-recruiting-be/internal/pkg/logger"
	"ai-recruiting-be/internal/websocket"
	"ai-recruiting-be/pkg/events"
	pktNats "ai-recruiting-be/pkg/nats"

	"github.com/google/uuid"
)

type INotificationService interface {
	// Start subscribes to parse status events and relays them to connected
	// websocket clients. Blocks until the subscription is set up.
	Start() error
}

type notificationService struct {
	subscriber *pktNats.Subscriber
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewNotificationService(subscriber *pktNats.Subscriber, hub *websocket.Hub, log logger.ILogger) INotificationService {
	return &notificationService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

func (s *notificationService) Start() error {
	subject := "recruiting." + events.TypeCandidateParseStatus
	return s.subscriber.Subscribe(subject, "parse-status-notifier", s.handleParseStatus)
}

func (s *notificationService) handleParseStatus(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	userIdStr, _ := payload["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		// No routable target; drop rather than retry forever.
		s.logger.Warn("NotificationService", "Event without valid user_id", map[string]interface{}{
			"payload": payload,
		})
		return nil
	}

	candidateIdStr, _ := payload["candidate_id"].(string)
	candidateId, err := uuid.Parse(candidateIdStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Event without valid candidate_id", map[string]interface{}{
			"payload": payload,
		})
		return nil
	}

	status, _ := payload["status"].(string)
	detail, _ := payload["detail"].(string)

	s.hub.Send(userId, "parse_status", dto.ParseStatusNotification{
		CandidateId: candidateId,
		Status:      status,
		Detail:      detail,
		OccurredAt:  time.Now(),
	})
	return nil
}
