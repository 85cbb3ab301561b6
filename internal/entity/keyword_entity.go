package entity

import (
	"time"

	"github.com/google/uuid"
)

type KeywordIntent string

const (
	KeywordIntentInformational KeywordIntent = "informational"
	KeywordIntentNavigational  KeywordIntent = "navigational"
	KeywordIntentCommercial    KeywordIntent = "commercial"
	KeywordIntentTransactional KeywordIntent = "transactional"
)

type TrackedKeyword struct {
	Id           uuid.UUID
	ProjectId    uuid.UUID
	Keyword      string
	IsActive     bool
	SearchVolume int
	Difficulty   int
	Intent       KeywordIntent
	CPC          float64
	Trend        string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

type KeywordRankHistory struct {
	Id        uuid.UUID
	KeywordId uuid.UUID
	Position  *int // nil when not in the tracked result window
	PageURL   string
	CheckedAt time.Time
}
