package toolset

import (
	"context"
	"testing"

	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/repository/contract"
	"seo-assistant-be/internal/repository/specification"
	"seo-assistant-be/internal/repository/unitofwork"
	"seo-assistant-be/pkg/agent"
	"seo-assistant-be/pkg/events"
	"seo-assistant-be/pkg/seodata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	published []events.Event
}

func (p *capturingPublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUnitOfWork struct {
	tracked []*entity.TrackedKeyword
	history *fakeRankHistoryRepo
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository       { return nil }
func (u *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository { return nil }
func (u *fakeUnitOfWork) TrackedKeywordRepository() contract.TrackedKeywordRepository {
	return fakeTrackedRepo{tracked: u.tracked}
}
func (u *fakeUnitOfWork) KeywordRankHistoryRepository() contract.KeywordRankHistoryRepository {
	return u.history
}
func (u *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository { return nil }
func (u *fakeUnitOfWork) ConversationMessageRepository() contract.ConversationMessageRepository {
	return nil
}

type fakeTrackedRepo struct {
	tracked []*entity.TrackedKeyword
}

func (r fakeTrackedRepo) Create(_ context.Context, _ *entity.TrackedKeyword) error      { return nil }
func (r fakeTrackedRepo) CreateBatch(_ context.Context, _ []*entity.TrackedKeyword) error { return nil }
func (r fakeTrackedRepo) Update(_ context.Context, _ *entity.TrackedKeyword) error      { return nil }
func (r fakeTrackedRepo) Delete(_ context.Context, _ uuid.UUID) error                   { return nil }
func (r fakeTrackedRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.TrackedKeyword, error) {
	return nil, nil
}
func (r fakeTrackedRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.TrackedKeyword, error) {
	return r.tracked, nil
}
func (r fakeTrackedRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r fakeTrackedRepo) SetActive(_ context.Context, _ uuid.UUID, _ bool) error { return nil }

type fakeRankHistoryRepo struct {
	latest  map[uuid.UUID]*entity.KeywordRankHistory
	created []*entity.KeywordRankHistory
}

func (r *fakeRankHistoryRepo) Create(_ context.Context, history *entity.KeywordRankHistory) error {
	r.created = append(r.created, history)
	return nil
}
func (r *fakeRankHistoryRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.KeywordRankHistory, error) {
	return nil, nil
}
func (r *fakeRankHistoryRepo) FindLatestByKeywordIds(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]*entity.KeywordRankHistory, error) {
	return r.latest, nil
}

func intPtr(v int) *int { return &v }

func rankDeps(uow *fakeUnitOfWork, publisher events.Publisher) Deps {
	return Deps{
		UowFactory:     &fakeUowFactory{uow: uow},
		EventPublisher: publisher,
	}
}

func TestRankCheckPublishesRankChangedEvent(t *testing.T) {
	userId := uuid.New()
	projectId := uuid.New()
	keywordId := uuid.New()
	uow := &fakeUnitOfWork{
		tracked: []*entity.TrackedKeyword{
			{Id: keywordId, ProjectId: projectId, Keyword: "running shoes", IsActive: true},
		},
		history: &fakeRankHistoryRepo{
			latest: map[uuid.UUID]*entity.KeywordRankHistory{
				keywordId: {KeywordId: keywordId, Position: intPtr(12)},
			},
		},
	}
	publisher := &capturingPublisher{}
	uc := agent.UserContext{UserID: userId, ProjectID: &projectId}

	recordRankCheck(context.Background(), rankDeps(uow, publisher), uc, "Running Shoes",
		&seodata.RankResult{Position: intPtr(8), PageURL: "https://demostore.example.com/shoes"})

	require.Len(t, uow.history.created, 1)
	assert.Equal(t, keywordId, uow.history.created[0].KeywordId)

	require.Len(t, publisher.published, 1)
	evt := publisher.published[0]
	assert.Equal(t, "RANK_CHANGED", evt.EventType())
	assert.Equal(t, "running shoes", evt.Payload()["keyword"])
	assert.Equal(t, 12, evt.Payload()["old_position"])
	assert.Equal(t, 8, evt.Payload()["new_position"])
	assert.Equal(t, userId, evt.Payload()["user_id"])
}

func TestFirstRankCheckPublishesNothing(t *testing.T) {
	projectId := uuid.New()
	keywordId := uuid.New()
	uow := &fakeUnitOfWork{
		tracked: []*entity.TrackedKeyword{
			{Id: keywordId, ProjectId: projectId, Keyword: "running shoes", IsActive: true},
		},
		history: &fakeRankHistoryRepo{},
	}
	publisher := &capturingPublisher{}
	uc := agent.UserContext{UserID: uuid.New(), ProjectID: &projectId}

	recordRankCheck(context.Background(), rankDeps(uow, publisher), uc, "running shoes",
		&seodata.RankResult{Position: intPtr(8)})

	require.Len(t, uow.history.created, 1)
	assert.Empty(t, publisher.published)
}

func TestUnchangedRankPublishesNothing(t *testing.T) {
	projectId := uuid.New()
	keywordId := uuid.New()
	uow := &fakeUnitOfWork{
		tracked: []*entity.TrackedKeyword{
			{Id: keywordId, ProjectId: projectId, Keyword: "running shoes", IsActive: true},
		},
		history: &fakeRankHistoryRepo{
			latest: map[uuid.UUID]*entity.KeywordRankHistory{
				keywordId: {KeywordId: keywordId, Position: intPtr(8)},
			},
		},
	}
	publisher := &capturingPublisher{}
	uc := agent.UserContext{UserID: uuid.New(), ProjectID: &projectId}

	recordRankCheck(context.Background(), rankDeps(uow, publisher), uc, "running shoes",
		&seodata.RankResult{Position: intPtr(8)})

	require.Len(t, uow.history.created, 1)
	assert.Empty(t, publisher.published)
}
