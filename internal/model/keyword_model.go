package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrackedKeyword struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectId    uuid.UUID      `gorm:"type:uuid;not null;index:idx_tracked_keywords_project_active,priority:1"`
	Keyword      string         `gorm:"type:varchar(255);not null"`
	IsActive     bool           `gorm:"default:true;index:idx_tracked_keywords_project_active,priority:2"`
	SearchVolume int            `gorm:"default:0"`
	Difficulty   int            `gorm:"default:0"`
	Intent       string         `gorm:"type:varchar(50)"`
	CPC          float64        `gorm:"type:decimal(10,2);default:0"`
	Trend        string         `gorm:"type:varchar(20)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (TrackedKeyword) TableName() string {
	return "tracked_keywords"
}

type KeywordRankHistory struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	KeywordId uuid.UUID `gorm:"type:uuid;not null;index:idx_rank_history_keyword_checked,priority:1"`
	Position  *int
	PageURL   string    `gorm:"type:text"`
	CheckedAt time.Time `gorm:"not null;index:idx_rank_history_keyword_checked,priority:2"`
}

func (KeywordRankHistory) TableName() string {
	return "keyword_rank_histories"
}
