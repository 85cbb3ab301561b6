package service

import (
	"context"
	"testing"
	"time"

	"seo-assistant-be/internal/dto"
	"seo-assistant-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackPublishesKeywordsTrackedEvent(t *testing.T) {
	userId := uuid.New()
	projectId := uuid.New()
	keywords := &fakeTrackedKeywordRepo{
		existing: []*entity.TrackedKeyword{
			{Id: uuid.New(), ProjectId: projectId, Keyword: "running shoes", IsActive: true},
		},
	}
	uow := &fakeUnitOfWork{
		projects: &fakeProjectRepo{project: &entity.Project{Id: projectId, UserId: userId, Name: "Demo Store"}},
		keywords: keywords,
	}
	publisher := &capturingPublisher{}
	svc := NewKeywordService(&fakeUowFactory{uow: uow}, noopQueuePublisher{}, publisher)

	res, err := svc.Track(context.Background(), userId, &dto.TrackKeywordsRequest{
		ProjectId: projectId,
		Keywords:  []string{"trail shoes", "Running Shoes", "waterproof boots"},
	})

	require.NoError(t, err)
	assert.Len(t, res.Tracked, 2)

	require.Len(t, publisher.published, 1)
	evt := publisher.published[0]
	assert.Equal(t, "KEYWORDS_TRACKED", evt.EventType())
	assert.Equal(t, 2, evt.Payload()["count"])
	assert.Equal(t, "Demo Store", evt.Payload()["project_name"])
	assert.Equal(t, userId, evt.Payload()["user_id"])
	assert.WithinDuration(t, time.Now(), evt.Timestamp(), time.Minute)
}

func TestTrackWithoutNewKeywordsPublishesNothing(t *testing.T) {
	userId := uuid.New()
	projectId := uuid.New()
	uow := &fakeUnitOfWork{
		projects: &fakeProjectRepo{project: &entity.Project{Id: projectId, UserId: userId, Name: "Demo Store"}},
		keywords: &fakeTrackedKeywordRepo{
			existing: []*entity.TrackedKeyword{
				{Id: uuid.New(), ProjectId: projectId, Keyword: "running shoes", IsActive: true},
			},
		},
	}
	publisher := &capturingPublisher{}
	svc := NewKeywordService(&fakeUowFactory{uow: uow}, noopQueuePublisher{}, publisher)

	res, err := svc.Track(context.Background(), userId, &dto.TrackKeywordsRequest{
		ProjectId: projectId,
		Keywords:  []string{"Running Shoes", "  running shoes  "},
	})

	require.NoError(t, err)
	assert.Empty(t, res.Tracked)
	assert.Empty(t, publisher.published)
}

func TestTrackSurvivesEventPublishFailure(t *testing.T) {
	userId := uuid.New()
	projectId := uuid.New()
	uow := &fakeUnitOfWork{
		projects: &fakeProjectRepo{project: &entity.Project{Id: projectId, UserId: userId, Name: "Demo Store"}},
		keywords: &fakeTrackedKeywordRepo{},
	}
	publisher := &capturingPublisher{err: assert.AnError}
	svc := NewKeywordService(&fakeUowFactory{uow: uow}, noopQueuePublisher{}, publisher)

	res, err := svc.Track(context.Background(), userId, &dto.TrackKeywordsRequest{
		ProjectId: projectId,
		Keywords:  []string{"trail shoes"},
	})

	require.NoError(t, err)
	assert.Len(t, res.Tracked, 1)
}
