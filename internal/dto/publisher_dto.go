package dto

import "github.com/google/uuid"

// PublishEmbedCandidateMessage is the watermill payload queued after a
// candidate document is stored, triggering chunking and embedding.
type PublishEmbedCandidateMessage struct {
	CandidateId uuid.UUID `json:"candidate_id"`
}
