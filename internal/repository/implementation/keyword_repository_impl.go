package implementation

import (
	"context"
	"errors"

	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/mapper"
	"seo-assistant-be/internal/model"
	"seo-assistant-be/internal/repository/contract"
	"seo-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrackedKeywordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KeywordMapper
}

func NewTrackedKeywordRepository(db *gorm.DB) contract.TrackedKeywordRepository {
	return &TrackedKeywordRepositoryImpl{
		db:     db,
		mapper: mapper.NewKeywordMapper(),
	}
}

func (r *TrackedKeywordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TrackedKeywordRepositoryImpl) Create(ctx context.Context, keyword *entity.TrackedKeyword) error {
	m := r.mapper.TrackedKeywordToModel(keyword)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*keyword = *r.mapper.TrackedKeywordToEntity(m)
	return nil
}

func (r *TrackedKeywordRepositoryImpl) CreateBatch(ctx context.Context, keywords []*entity.TrackedKeyword) error {
	if len(keywords) == 0 {
		return nil
	}
	models := make([]*model.TrackedKeyword, len(keywords))
	for i, k := range keywords {
		models[i] = r.mapper.TrackedKeywordToModel(k)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*keywords[i] = *r.mapper.TrackedKeywordToEntity(m)
	}
	return nil
}

func (r *TrackedKeywordRepositoryImpl) Update(ctx context.Context, keyword *entity.TrackedKeyword) error {
	m := r.mapper.TrackedKeywordToModel(keyword)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*keyword = *r.mapper.TrackedKeywordToEntity(m)
	return nil
}

func (r *TrackedKeywordRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TrackedKeyword{}, id).Error
}

func (r *TrackedKeywordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TrackedKeyword, error) {
	var m model.TrackedKeyword
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TrackedKeywordToEntity(&m), nil
}

func (r *TrackedKeywordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TrackedKeyword, error) {
	var models []*model.TrackedKeyword
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TrackedKeyword, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TrackedKeywordToEntity(m)
	}
	return entities, nil
}

func (r *TrackedKeywordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.TrackedKeyword{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TrackedKeywordRepositoryImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.TrackedKeyword{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("tracked keyword not found")
	}
	return nil
}

type KeywordRankHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KeywordMapper
}

func NewKeywordRankHistoryRepository(db *gorm.DB) contract.KeywordRankHistoryRepository {
	return &KeywordRankHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewKeywordMapper(),
	}
}

func (r *KeywordRankHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KeywordRankHistoryRepositoryImpl) Create(ctx context.Context, history *entity.KeywordRankHistory) error {
	m := r.mapper.RankHistoryToModel(history)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*history = *r.mapper.RankHistoryToEntity(m)
	return nil
}

func (r *KeywordRankHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KeywordRankHistory, error) {
	var models []*model.KeywordRankHistory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.KeywordRankHistory, len(models))
	for i, m := range models {
		entities[i] = r.mapper.RankHistoryToEntity(m)
	}
	return entities, nil
}

// FindLatestByKeywordIds returns the most recent check per keyword.
func (r *KeywordRankHistoryRepositoryImpl) FindLatestByKeywordIds(ctx context.Context, keywordIds []uuid.UUID) (map[uuid.UUID]*entity.KeywordRankHistory, error) {
	if len(keywordIds) == 0 {
		return map[uuid.UUID]*entity.KeywordRankHistory{}, nil
	}

	var models []*model.KeywordRankHistory
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (keyword_id) *
		     FROM keyword_rank_histories
		     WHERE keyword_id IN ?
		     ORDER BY keyword_id, checked_at DESC`, keywordIds).
		Scan(&models).Error
	if err != nil {
		return nil, err
	}

	latest := make(map[uuid.UUID]*entity.KeywordRankHistory, len(models))
	for _, m := range models {
		latest[m.KeywordId] = r.mapper.RankHistoryToEntity(m)
	}
	return latest, nil
}
