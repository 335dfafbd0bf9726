package contract

import (
	"context"
	"time"

	"ai-recruiting-be/internal/entity"
	"ai-recruiting-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// BumpActivity increments message_count by delta and advances
	// last_active_at in a single UPDATE, so a concurrent turn on the same
	// session never loses a count.
	BumpActivity(ctx context.Context, sessionId uuid.UUID, messageDelta int, at time.Time) error

	// Touch refreshes last_active_at only.
	Touch(ctx context.Context, sessionId uuid.UUID, at time.Time) error
}
