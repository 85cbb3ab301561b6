package entity

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Domain    string
	Location  string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
