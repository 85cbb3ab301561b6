package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Domain   string `json:"domain" validate:"required,fqdn"`
	Location string `json:"location,omitempty" validate:"max=100"`
}

type CreateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateProjectRequest struct {
	Id       uuid.UUID
	Name     string `json:"name" validate:"required,max=255"`
	Location string `json:"location,omitempty" validate:"max=100"`
}

type UpdateProjectResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowProjectResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Domain    string     `json:"domain"`
	Location  string     `json:"location,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// ProjectStatusResponse is the aggregated health snapshot for one project.
type ProjectStatusResponse struct {
	Id              uuid.UUID                   `json:"id"`
	Name            string                      `json:"name"`
	Domain          string                      `json:"domain"`
	ActiveKeywords  int                         `json:"active_keywords"`
	TrackedKeywords []ProjectKeywordStatus      `json:"tracked_keywords"`
	RecentRanks     []ProjectKeywordRankHistory `json:"recent_ranks,omitempty"`
}

type ProjectKeywordStatus struct {
	Id           uuid.UUID `json:"id"`
	Keyword      string    `json:"keyword"`
	SearchVolume int       `json:"search_volume"`
	Difficulty   int       `json:"difficulty"`
	Position     *int      `json:"position,omitempty"` // latest recorded rank, if any
}

type ProjectKeywordRankHistory struct {
	Keyword   string    `json:"keyword"`
	Position  *int      `json:"position,omitempty"`
	PageURL   string    `json:"page_url,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}
