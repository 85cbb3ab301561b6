package service

import (
	"context"
	"testing"

	"seo-assistant-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectPublishesEvent(t *testing.T) {
	userId := uuid.New()
	projects := &fakeProjectRepo{}
	uow := &fakeUnitOfWork{projects: projects, keywords: &fakeTrackedKeywordRepo{}}
	publisher := &capturingPublisher{}
	svc := NewProjectService(&fakeUowFactory{uow: uow}, publisher)

	res, err := svc.Create(context.Background(), userId, &dto.CreateProjectRequest{
		Name:     "Demo Store",
		Domain:   "https://demostore.example.com",
		Location: "United States",
	})

	require.NoError(t, err)
	require.NotNil(t, projects.project)
	assert.Equal(t, res.Id, projects.project.Id)

	require.Len(t, publisher.published, 1)
	evt := publisher.published[0]
	assert.Equal(t, "PROJECT_CREATED", evt.EventType())
	assert.Equal(t, "Demo Store", evt.Payload()["name"])
	assert.Equal(t, "demostore.example.com", evt.Payload()["domain"])
	assert.Equal(t, userId, evt.Payload()["user_id"])
}

func TestCreateProjectWithoutPublisherStillSucceeds(t *testing.T) {
	uow := &fakeUnitOfWork{projects: &fakeProjectRepo{}, keywords: &fakeTrackedKeywordRepo{}}
	svc := NewProjectService(&fakeUowFactory{uow: uow}, nil)

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateProjectRequest{
		Name:   "Demo Store",
		Domain: "demostore.example.com",
	})

	require.NoError(t, err)
}
