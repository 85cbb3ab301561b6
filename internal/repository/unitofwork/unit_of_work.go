package unitofwork

import (
	"context"

	"seo-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProjectRepository() contract.ProjectRepository
	TrackedKeywordRepository() contract.TrackedKeywordRepository
	KeywordRankHistoryRepository() contract.KeywordRankHistoryRepository
	ConversationRepository() contract.ConversationRepository
	ConversationMessageRepository() contract.ConversationMessageRepository
}
