package toolset

import (
	"context"

	"seo-assistant-be/internal/repository/specification"
	"seo-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// TrackedKeywordLookup resolves the active keywords a user already tracks,
// across every project they own.
type TrackedKeywordLookup struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTrackedKeywordLookup(uowFactory unitofwork.RepositoryFactory) *TrackedKeywordLookup {
	return &TrackedKeywordLookup{
		uowFactory: uowFactory,
	}
}

func (l *TrackedKeywordLookup) ActiveKeywords(ctx context.Context, userID uuid.UUID) ([]string, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	projects, err := uow.ProjectRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userID})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}

	projectIds := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		projectIds[i] = p.Id
	}

	keywords, err := uow.TrackedKeywordRepository().FindAll(ctx,
		specification.ByProjectIDs{ProjectIDs: projectIds},
		specification.ActiveKeywords{},
	)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(keywords))
	for _, k := range keywords {
		result = append(result, k.Keyword)
	}
	return result, nil
}
