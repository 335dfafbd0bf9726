package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy scopes rows to one (org, user) pair. Every session, message and
// memory query goes through this for tenant isolation.
type OwnedBy struct {
	OrgID  uuid.UUID
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("org_id = ? AND user_id = ?", s.OrgID, s.UserID)
}

// BySessionID filters messages or memories by their parent session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ActiveSince keeps sessions whose last activity is on or after the cutoff
type ActiveSince struct {
	Cutoff time.Time
}

func (s ActiveSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("last_active_at >= ?", s.Cutoff)
}
