package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByProjectID struct {
	ProjectID uuid.UUID
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

type ByProjectIDs struct {
	ProjectIDs []uuid.UUID
}

func (s ByProjectIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id IN ?", s.ProjectIDs)
}

type ActiveKeywords struct{}

func (s ActiveKeywords) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type ByKeywordID struct {
	KeywordID uuid.UUID
}

func (s ByKeywordID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("keyword_id = ?", s.KeywordID)
}
