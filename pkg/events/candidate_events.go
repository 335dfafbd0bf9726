package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeCandidateParseStatus = "CANDIDATE_PARSE_STATUS"
)

// NewCandidateParseStatusEvent reports a candidate document moving through
// the parse lifecycle (queued, processing, done, error).
func NewCandidateParseStatusEvent(orgId, userId, candidateId uuid.UUID, status string, detail string) Event {
	data := map[string]interface{}{
		"org_id":       orgId.String(),
		"user_id":      userId.String(),
		"candidate_id": candidateId.String(),
		"status":       status,
	}
	if detail != "" {
		data["detail"] = detail
	}
	return BaseEvent{
		Type:       TypeCandidateParseStatus,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
