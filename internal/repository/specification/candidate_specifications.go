package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByOrgID filters candidates by owning organization
type ByOrgID struct {
	OrgID uuid.UUID
}

func (s ByOrgID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("org_id = ?", s.OrgID)
}

// ByCandidateID filters documents or embeddings by candidate
type ByCandidateID struct {
	CandidateID uuid.UUID
}

func (s ByCandidateID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("candidate_id = ?", s.CandidateID)
}

// ByParseStatus filters candidates by their document parse status
type ByParseStatus struct {
	Status string
}

func (s ByParseStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parse_status = ?", s.Status)
}
