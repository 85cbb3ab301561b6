package service

import (
	"context"
	"encoding/json"
	"testing"

	"seo-assistant-be/internal/dto"
	"seo-assistant-be/internal/entity"
	"seo-assistant-be/pkg/seodata"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedResearcher struct {
	candidates []seodata.KeywordCandidate
}

func (f fixedResearcher) ResearchKeywords(_ context.Context, _ string, _ string, _ int) ([]seodata.KeywordCandidate, error) {
	return f.candidates, nil
}

func TestEnrichmentPublishesKeywordEnrichedEvent(t *testing.T) {
	userId := uuid.New()
	keywordId := uuid.New()
	projectId := uuid.New()
	keywords := &fakeTrackedKeywordRepo{
		existing: []*entity.TrackedKeyword{
			{Id: keywordId, ProjectId: projectId, Keyword: "running shoes", IsActive: true},
		},
	}
	uow := &fakeUnitOfWork{
		projects: &fakeProjectRepo{project: &entity.Project{Id: projectId, UserId: userId, Location: "United States"}},
		keywords: keywords,
	}
	publisher := &capturingPublisher{}
	cs := &consumerService{
		uowFactory: &fakeUowFactory{uow: uow},
		researcher: fixedResearcher{candidates: []seodata.KeywordCandidate{
			{Keyword: "Running Shoes", SearchVolume: 74000, Difficulty: 68, Intent: "commercial"},
		}},
		eventPublisher: publisher,
	}

	payload, _ := json.Marshal(dto.PublishEnrichKeywordMessage{KeywordId: keywordId})
	cs.processMessage(context.Background(), message.NewMessage(watermill.NewUUID(), payload))

	require.Len(t, keywords.updated, 1)
	assert.Equal(t, 74000, keywords.updated[0].SearchVolume)

	require.Len(t, publisher.published, 1)
	evt := publisher.published[0]
	assert.Equal(t, "KEYWORD_ENRICHED", evt.EventType())
	assert.Equal(t, "running shoes", evt.Payload()["keyword"])
	assert.Equal(t, userId, evt.Payload()["user_id"])
}

func TestEnrichmentWithoutMatchPublishesNothing(t *testing.T) {
	keywordId := uuid.New()
	uow := &fakeUnitOfWork{
		projects: &fakeProjectRepo{project: &entity.Project{Id: uuid.New(), UserId: uuid.New()}},
		keywords: &fakeTrackedKeywordRepo{
			existing: []*entity.TrackedKeyword{
				{Id: keywordId, Keyword: "running shoes", IsActive: true},
			},
		},
	}
	publisher := &capturingPublisher{}
	cs := &consumerService{
		uowFactory:     &fakeUowFactory{uow: uow},
		researcher:     fixedResearcher{},
		eventPublisher: publisher,
	}

	payload, _ := json.Marshal(dto.PublishEnrichKeywordMessage{KeywordId: keywordId})
	cs.processMessage(context.Background(), message.NewMessage(watermill.NewUUID(), payload))

	assert.Empty(t, publisher.published)
}
