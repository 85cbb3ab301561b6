package contract

import (
	"context"

	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TrackedKeywordRepository interface {
	Create(ctx context.Context, keyword *entity.TrackedKeyword) error
	CreateBatch(ctx context.Context, keywords []*entity.TrackedKeyword) error
	Update(ctx context.Context, keyword *entity.TrackedKeyword) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TrackedKeyword, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TrackedKeyword, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type KeywordRankHistoryRepository interface {
	Create(ctx context.Context, history *entity.KeywordRankHistory) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KeywordRankHistory, error)
	FindLatestByKeywordIds(ctx context.Context, keywordIds []uuid.UUID) (map[uuid.UUID]*entity.KeywordRankHistory, error)
}
