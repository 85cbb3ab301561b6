package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"seo-assistant-be/internal/dto"
	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/repository/specification"
	"seo-assistant-be/internal/repository/unitofwork"
	"seo-assistant-be/pkg/events"
	"seo-assistant-be/pkg/seodata"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService enriches freshly tracked keywords in the background. The
// tracking endpoint stays fast; volume, difficulty, CPC and intent arrive a
// moment later via the keyword data provider.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	researcher     seodata.KeywordResearcher
	eventPublisher events.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	researcher seodata.KeywordResearcher,
	eventPublisher events.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		researcher:     researcher,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEnrichKeywordMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal enrichment message: %v", err)
		msg.Ack() // invalid payloads are not retriable
		return
	}

	log.Printf("[INFO] Enriching keyword %s", payload.KeywordId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	keyword, err := uow.TrackedKeywordRepository().FindOne(ctx, specification.ByID{ID: payload.KeywordId})
	if err != nil {
		log.Printf("[ERROR] Failed to load keyword %s: %v", payload.KeywordId, err)
		msg.Nack()
		return
	}
	if keyword == nil {
		log.Printf("[WARN] Keyword %s no longer exists, skipping enrichment", payload.KeywordId)
		msg.Ack()
		return
	}

	project, err := uow.ProjectRepository().FindOne(ctx, specification.ByID{ID: keyword.ProjectId})
	if err != nil {
		log.Printf("[ERROR] Failed to load project %s: %v", keyword.ProjectId, err)
		msg.Nack()
		return
	}

	location := ""
	if project != nil {
		location = project.Location
	}

	candidates, err := cs.researcher.ResearchKeywords(ctx, keyword.Keyword, location, 10)
	if err != nil {
		log.Printf("[ERROR] Keyword data lookup failed for %q: %v", keyword.Keyword, err)
		msg.Nack()
		return
	}

	match := findExactCandidate(candidates, keyword.Keyword)
	if match == nil {
		// provider has no data for this exact phrase, nothing to update
		log.Printf("[INFO] No metrics available for %q", keyword.Keyword)
		msg.Ack()
		return
	}

	keyword.SearchVolume = match.SearchVolume
	keyword.Difficulty = match.Difficulty
	keyword.Intent = entity.KeywordIntent(match.Intent)
	keyword.CPC = match.CPC
	keyword.Trend = match.Trend

	if err := uow.TrackedKeywordRepository().Update(ctx, keyword); err != nil {
		log.Printf("[ERROR] Failed to save enriched keyword %s: %v", keyword.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Keyword %q enriched (volume=%d difficulty=%d)", keyword.Keyword, match.SearchVolume, match.Difficulty)

	// Notify the project owner. Enrichment already succeeded, so a publish
	// failure is logged and the message still acked.
	if cs.eventPublisher != nil && project != nil {
		evt := events.BaseEvent{
			Type: "KEYWORD_ENRICHED",
			Data: map[string]interface{}{
				"keyword": keyword.Keyword,
				"user_id": project.UserId,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish KEYWORD_ENRICHED event: %v", err)
		}
	}

	msg.Ack()
}

func findExactCandidate(candidates []seodata.KeywordCandidate, keyword string) *seodata.KeywordCandidate {
	target := strings.ToLower(strings.TrimSpace(keyword))
	for i := range candidates {
		if strings.ToLower(strings.TrimSpace(candidates[i].Keyword)) == target {
			return &candidates[i]
		}
	}
	return nil
}
