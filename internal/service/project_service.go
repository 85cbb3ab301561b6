package service

import (
	"context"
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

type IProjectService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ShowProjectResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowProjectResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateProjectRequest) (*dto.UpdateProjectResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Status(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ProjectStatusResponse, error)
}

type projectService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
}

func NewProjectService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher) IProjectService {
	return &projectService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (c *projectService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.ShowProjectResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ShowProjectResponse, 0, len(projects))
	for _, p := range projects {
		result = append(result, &dto.ShowProjectResponse{
			Id:        p.Id,
			Name:      p.Name,
			Domain:    p.Domain,
			Location:  p.Location,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}

	return result, nil
}

func (c *projectService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateProjectRequest) (*dto.CreateProjectResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	project := entity.Project{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.Name,
		Domain:    normalizeDomain(req.Domain),
		Location:  req.Location,
		CreatedAt: time.Now(),
	}

	if err := uow.ProjectRepository().Create(ctx, &project); err != nil {
		return nil, err
	}

	// Notification event. The request must not fail over it.
	if c.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "PROJECT_CREATED",
			Data: map[string]interface{}{
				"name":    project.Name,
				"domain":  project.Domain,
				"user_id": userId,
			},
			OccurredAt: time.Now(),
		}
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish PROJECT_CREATED event: %v", err)
		}
	}

	return &dto.CreateProjectResponse{
		Id: project.Id,
	}, nil
}

func (c *projectService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowProjectResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	return &dto.ShowProjectResponse{
		Id:        project.Id,
		Name:      project.Name,
		Domain:    project.Domain,
		Location:  project.Location,
		CreatedAt: project.CreatedAt,
		UpdatedAt: project.UpdatedAt,
	}, nil
}

func (c *projectService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateProjectRequest) (*dto.UpdateProjectResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	now := time.Now()
	project.Name = req.Name
	project.Location = req.Location
	project.UpdatedAt = &now

	if err := uow.ProjectRepository().Update(ctx, project); err != nil {
		return nil, err
	}

	return &dto.UpdateProjectResponse{
		Id: project.Id,
	}, nil
}

func (c *projectService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if project == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ProjectRepository().Delete(ctx, id); err != nil {
		return err
	}

	keywords, err := uow.TrackedKeywordRepository().FindAll(ctx, specification.ByProjectID{ProjectID: id})
	if err != nil {
		return err
	}
	for _, keyword := range keywords {
		if err := uow.TrackedKeywordRepository().Delete(ctx, keyword.Id); err != nil {
			return err
		}
	}

	return uow.Commit()
}

// Status aggregates the project's tracked keywords with their latest
// recorded positions into one health snapshot.
func (c *projectService) Status(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ProjectStatusResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project not found or access denied")
	}

	keywords, err := uow.TrackedKeywordRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: id},
		specification.ActiveKeywords{},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	keywordIds := make([]uuid.UUID, len(keywords))
	keywordNames := make(map[uuid.UUID]string, len(keywords))
	for i, k := range keywords {
		keywordIds[i] = k.Id
		keywordNames[k.Id] = k.Keyword
	}

	latest, err := uow.KeywordRankHistoryRepository().FindLatestByKeywordIds(ctx, keywordIds)
	if err != nil {
		return nil, err
	}

	status := make([]dto.ProjectKeywordStatus, 0, len(keywords))
	recent := make([]dto.ProjectKeywordRankHistory, 0, len(latest))
	for _, k := range keywords {
		entry := dto.ProjectKeywordStatus{
			Id:           k.Id,
			Keyword:      k.Keyword,
			SearchVolume: k.SearchVolume,
			Difficulty:   k.Difficulty,
		}
		if h, ok := latest[k.Id]; ok {
			entry.Position = h.Position
			recent = append(recent, dto.ProjectKeywordRankHistory{
				Keyword:   keywordNames[k.Id],
				Position:  h.Position,
				PageURL:   h.PageURL,
				CheckedAt: h.CheckedAt,
			})
		}
		status = append(status, entry)
	}

	return &dto.ProjectStatusResponse{
		Id:              project.Id,
		Name:            project.Name,
		Domain:          project.Domain,
		ActiveKeywords:  len(keywords),
		TrackedKeywords: status,
		RecentRanks:     recent,
	}, nil
}

func normalizeDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	return strings.TrimSuffix(domain, "/")
}
