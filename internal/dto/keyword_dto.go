package dto

import (
	"time"

	"github.com/google/uuid"
)

type TrackKeywordsRequest struct {
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
	Keywords  []string  `json:"keywords" validate:"required,min=1,max=50,dive,required,max=255"`
}

type TrackKeywordsResponse struct {
	Tracked []uuid.UUID `json:"tracked"`
	Skipped []string    `json:"skipped,omitempty"` // already tracked (case-insensitive)
}

type GetKeywordsResponse struct {
	Id           uuid.UUID  `json:"id"`
	ProjectId    uuid.UUID  `json:"project_id"`
	Keyword      string     `json:"keyword"`
	IsActive     bool       `json:"is_active"`
	SearchVolume int        `json:"search_volume"`
	Difficulty   int        `json:"difficulty"`
	Intent       string     `json:"intent,omitempty"`
	CPC          float64    `json:"cpc"`
	Trend        string     `json:"trend,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type DeactivateKeywordResponse struct {
	Id uuid.UUID `json:"id"`
}

// PublishEnrichKeywordMessage is the event-bus payload asking the background
// worker to fill in metrics for a freshly tracked keyword.
type PublishEnrichKeywordMessage struct {
	KeywordId uuid.UUID `json:"keyword_id"`
}
