package service

import (
	"context"

	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/repository/contract"
	"seo-assistant-be/internal/repository/specification"
	"seo-assistant-be/internal/repository/unitofwork"
	"seo-assistant-be/pkg/events"

	"github.com/google/uuid"
)

// capturingPublisher records every event handed to it.
type capturingPublisher struct {
	published []events.Event
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return p.err
}

// noopQueuePublisher satisfies IPublisherService for tests that do not
// exercise the enrichment queue.
type noopQueuePublisher struct{}

func (noopQueuePublisher) Publish(_ context.Context, _ []byte) error { return nil }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUnitOfWork struct {
	projects *fakeProjectRepo
	keywords *fakeTrackedKeywordRepo
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository       { return nil }
func (u *fakeUnitOfWork) ProjectRepository() contract.ProjectRepository { return u.projects }
func (u *fakeUnitOfWork) TrackedKeywordRepository() contract.TrackedKeywordRepository {
	return u.keywords
}
func (u *fakeUnitOfWork) KeywordRankHistoryRepository() contract.KeywordRankHistoryRepository {
	return nil
}
func (u *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository { return nil }
func (u *fakeUnitOfWork) ConversationMessageRepository() contract.ConversationMessageRepository {
	return nil
}

type fakeProjectRepo struct {
	project *entity.Project
}

func (r *fakeProjectRepo) Create(_ context.Context, project *entity.Project) error {
	r.project = project
	return nil
}
func (r *fakeProjectRepo) Update(_ context.Context, _ *entity.Project) error { return nil }
func (r *fakeProjectRepo) Delete(_ context.Context, _ uuid.UUID) error       { return nil }
func (r *fakeProjectRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Project, error) {
	return r.project, nil
}
func (r *fakeProjectRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Project, error) {
	if r.project == nil {
		return nil, nil
	}
	return []*entity.Project{r.project}, nil
}
func (r *fakeProjectRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeTrackedKeywordRepo struct {
	existing []*entity.TrackedKeyword
	created  []*entity.TrackedKeyword
	updated  []*entity.TrackedKeyword
}

func (r *fakeTrackedKeywordRepo) Create(_ context.Context, keyword *entity.TrackedKeyword) error {
	r.created = append(r.created, keyword)
	return nil
}
func (r *fakeTrackedKeywordRepo) CreateBatch(_ context.Context, keywords []*entity.TrackedKeyword) error {
	r.created = append(r.created, keywords...)
	return nil
}
func (r *fakeTrackedKeywordRepo) Update(_ context.Context, keyword *entity.TrackedKeyword) error {
	r.updated = append(r.updated, keyword)
	return nil
}
func (r *fakeTrackedKeywordRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *fakeTrackedKeywordRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.TrackedKeyword, error) {
	if len(r.existing) == 0 {
		return nil, nil
	}
	return r.existing[0], nil
}
func (r *fakeTrackedKeywordRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.TrackedKeyword, error) {
	return r.existing, nil
}
func (r *fakeTrackedKeywordRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.existing)), nil
}
func (r *fakeTrackedKeywordRepo) SetActive(_ context.Context, _ uuid.UUID, _ bool) error {
	return nil
}
