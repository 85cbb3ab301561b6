package mapper

import (
	"time"

	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/model"

	"gorm.io/gorm"
)

type KeywordMapper struct{}

func NewKeywordMapper() *KeywordMapper {
	return &KeywordMapper{}
}

func (m *KeywordMapper) TrackedKeywordToEntity(k *model.TrackedKeyword) *entity.TrackedKeyword {
	if k == nil {
		return nil
	}

	var deletedAt *time.Time
	if k.DeletedAt.Valid {
		t := k.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !k.UpdatedAt.IsZero() {
		t := k.UpdatedAt
		updatedAt = &t
	}

	return &entity.TrackedKeyword{
		Id:           k.Id,
		ProjectId:    k.ProjectId,
		Keyword:      k.Keyword,
		IsActive:     k.IsActive,
		SearchVolume: k.SearchVolume,
		Difficulty:   k.Difficulty,
		Intent:       entity.KeywordIntent(k.Intent),
		CPC:          k.CPC,
		Trend:        k.Trend,
		CreatedAt:    k.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    k.DeletedAt.Valid,
	}
}

func (m *KeywordMapper) TrackedKeywordToModel(k *entity.TrackedKeyword) *model.TrackedKeyword {
	if k == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if k.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *k.DeletedAt, Valid: true}
	} else if k.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if k.UpdatedAt != nil {
		updatedAt = *k.UpdatedAt
	}

	return &model.TrackedKeyword{
		Id:           k.Id,
		ProjectId:    k.ProjectId,
		Keyword:      k.Keyword,
		IsActive:     k.IsActive,
		SearchVolume: k.SearchVolume,
		Difficulty:   k.Difficulty,
		Intent:       string(k.Intent),
		CPC:          k.CPC,
		Trend:        k.Trend,
		CreatedAt:    k.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *KeywordMapper) TrackedKeywordsToEntities(keywords []model.TrackedKeyword) []entity.TrackedKeyword {
	result := make([]entity.TrackedKeyword, 0, len(keywords))
	for i := range keywords {
		result = append(result, *m.TrackedKeywordToEntity(&keywords[i]))
	}
	return result
}

func (m *KeywordMapper) RankHistoryToEntity(h *model.KeywordRankHistory) *entity.KeywordRankHistory {
	if h == nil {
		return nil
	}

	return &entity.KeywordRankHistory{
		Id:        h.Id,
		KeywordId: h.KeywordId,
		Position:  h.Position,
		PageURL:   h.PageURL,
		CheckedAt: h.CheckedAt,
	}
}

func (m *KeywordMapper) RankHistoryToModel(h *entity.KeywordRankHistory) *model.KeywordRankHistory {
	if h == nil {
		return nil
	}

	return &model.KeywordRankHistory{
		Id:        h.Id,
		KeywordId: h.KeywordId,
		Position:  h.Position,
		PageURL:   h.PageURL,
		CheckedAt: h.CheckedAt,
	}
}

func (m *KeywordMapper) RankHistoriesToEntities(histories []model.KeywordRankHistory) []entity.KeywordRankHistory {
	result := make([]entity.KeywordRankHistory, 0, len(histories))
	for i := range histories {
		result = append(result, *m.RankHistoryToEntity(&histories[i]))
	}
	return result
}
