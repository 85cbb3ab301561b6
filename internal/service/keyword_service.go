package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"seo-assistant-be/internal/dto"
	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/repository/specification"
	"seo-assistant-be/internal/repository/unitofwork"
	"seo-assistant-be/pkg/events"

	"github.com/google/uuid"
)

type IKeywordService interface {
	Track(ctx context.Context, userId uuid.UUID, req *dto.TrackKeywordsRequest) (*dto.TrackKeywordsResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) ([]*dto.GetKeywordsResponse, error)
	Deactivate(ctx context.Context, userId uuid.UUID, keywordId uuid.UUID) (*dto.DeactivateKeywordResponse, error)
}

type keywordService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   events.Publisher
}

func NewKeywordService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
) IKeywordService {
	return &keywordService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (c *keywordService) Track(ctx context.Context, userId uuid.UUID, req *dto.TrackKeywordsRequest) (*dto.TrackKeywordsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Check project ownership
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: req.ProjectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project not found or access denied")
	}

	existing, err := uow.TrackedKeywordRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: req.ProjectId},
	)
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]bool, len(existing))
	for _, k := range existing {
		tracked[normalizeKeyword(k.Keyword)] = true
	}

	var toCreate []*entity.TrackedKeyword
	var skipped []string
	now := time.Now()

	for _, raw := range req.Keywords {
		keyword := strings.TrimSpace(raw)
		if keyword == "" {
			continue
		}
		normalized := normalizeKeyword(keyword)
		if tracked[normalized] {
			skipped = append(skipped, keyword)
			continue
		}
		tracked[normalized] = true
		toCreate = append(toCreate, &entity.TrackedKeyword{
			Id:        uuid.New(),
			ProjectId: req.ProjectId,
			Keyword:   keyword,
			IsActive:  true,
			CreatedAt: now,
		})
	}

	if err := uow.TrackedKeywordRepository().CreateBatch(ctx, toCreate); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(toCreate))
	for _, k := range toCreate {
		ids = append(ids, k.Id)

		// hand enrichment to the background worker
		msg := dto.PublishEnrichKeywordMessage{KeywordId: k.Id}
		msgJson, _ := json.Marshal(msg)
		if err := c.publisherService.Publish(ctx, msgJson); err != nil {
			return nil, err
		}
	}

	// Notification event. The request must not fail over it.
	if c.eventPublisher != nil && len(toCreate) > 0 {
		evt := events.BaseEvent{
			Type: "KEYWORDS_TRACKED",
			Data: map[string]interface{}{
				"count":        len(toCreate),
				"project_name": project.Name,
				"user_id":      userId,
			},
			OccurredAt: time.Now(),
		}
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish KEYWORDS_TRACKED event: %v", err)
		}
	}

	return &dto.TrackKeywordsResponse{
		Tracked: ids,
		Skipped: skipped,
	}, nil
}

func (c *keywordService) GetAll(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) ([]*dto.GetKeywordsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: projectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project not found or access denied")
	}

	keywords, err := uow.TrackedKeywordRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: projectId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetKeywordsResponse, 0, len(keywords))
	for _, k := range keywords {
		response = append(response, &dto.GetKeywordsResponse{
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
			UpdatedAt:    k.UpdatedAt,
		})
	}

	return response, nil
}

func (c *keywordService) Deactivate(ctx context.Context, userId uuid.UUID, keywordId uuid.UUID) (*dto.DeactivateKeywordResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	keyword, err := uow.TrackedKeywordRepository().FindOne(ctx, specification.ByID{ID: keywordId})
	if err != nil {
		return nil, err
	}
	if keyword == nil {
		return nil, fmt.Errorf("keyword not found")
	}

	// Ownership runs through the project
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: keyword.ProjectId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("keyword not found or access denied")
	}

	if err := uow.TrackedKeywordRepository().SetActive(ctx, keywordId, false); err != nil {
		return nil, err
	}

	return &dto.DeactivateKeywordResponse{Id: keywordId}, nil
}

func normalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
