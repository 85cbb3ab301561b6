package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"seo-assistant-be/internal/constant"
	"seo-assistant-be/internal/dto"
	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/repository/memory"
	"seo-assistant-be/internal/repository/specification"
	"seo-assistant-be/internal/repository/unitofwork"
	"seo-assistant-be/pkg/agent"
	"seo-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

const historyWindow = 10 // prior messages replayed into each turn

type IAssistantService interface {
	Chat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, sink agent.Sink) error
	GetAllConversations(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllConversationsResponse, error)
	GetConversationHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetConversationHistoryResponse, error)
	DeleteConversation(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) error
}

type assistantService struct {
	uowFactory unitofwork.RepositoryFactory
	runner     *agent.Runner
	turnState  *memory.TurnStateRepository
	llmLogger  *log.Logger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	runner *agent.Runner,
	turnState *memory.TurnStateRepository,
	llmLogger *log.Logger,
) IAssistantService {
	return &assistantService{
		uowFactory: uowFactory,
		runner:     runner,
		turnState:  turnState,
		llmLogger:  llmLogger,
	}
}

// InitLLMLogger opens the append-only model interaction log.
func InitLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_assistant.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// Chat processes one user turn. Events stream to the sink as they happen;
// the user and assistant messages are persisted only after the turn succeeds.
func (cs *assistantService) Chat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, sink agent.Sink) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := cs.resolveConversation(ctx, uow, userId, req)
	if err != nil {
		sink.Send(agent.Event{Type: agent.EventError, Error: err.Error()})
		return err
	}

	if !cs.turnState.BeginTurn(conversation.Id) {
		err := fmt.Errorf("conversation is already processing a message")
		sink.Send(agent.Event{Type: agent.EventError, Error: err.Error()})
		return err
	}
	defer cs.turnState.EndTurn(conversation.Id)

	history, err := cs.loadHistory(ctx, uow, conversation.Id)
	if err != nil {
		sink.Send(agent.Event{Type: agent.EventError, Error: "failed to load conversation history"})
		return err
	}

	cs.llmLogger.Printf("[CHAT] conversation=%s history=%d", conversation.Id, len(history))

	out, err := cs.runner.RunTurn(ctx, agent.TurnInput{
		ConversationID: conversation.Id,
		UserText:       req.Message,
		History:        history,
		User: agent.UserContext{
			UserID:    userId,
			ProjectID: conversation.ProjectId,
		},
	}, sink)
	if err != nil {
		// the runner already emitted the error event
		return err
	}

	return cs.persistTurn(ctx, uow, conversation, req.Message, out)
}

func (cs *assistantService) resolveConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req *dto.SendChatRequest) (*entity.Conversation, error) {
	if req.ConversationId != nil {
		conversation, err := uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: *req.ConversationId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, fmt.Errorf("conversation not found or access denied")
		}
		return conversation, nil
	}

	// First message starts a new conversation, optionally bound to a project.
	if req.ProjectId != nil {
		project, err := uow.ProjectRepository().FindOne(ctx,
			specification.ByID{ID: *req.ProjectId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, fmt.Errorf("project not found or access denied")
		}
	}

	conversation := entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		ProjectId: req.ProjectId,
		Title:     titleFromMessage(req.Message),
		CreatedAt: time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (cs *assistantService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID) ([]llm.Message, error) {
	// newest first so the limit keeps the tail of the conversation
	messages, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyWindow, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		history = append(history, llm.Message{
			Role:    messages[i].Role,
			Content: messages[i].Content,
		})
	}
	return history, nil
}

func (cs *assistantService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, conversation *entity.Conversation, userText string, out *agent.TurnOutput) error {
	now := time.Now()

	userMessage := entity.ConversationMessage{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.ChatRoleUser,
		Content:        userText,
		CreatedAt:      now,
	}
	assistantMessage := entity.ConversationMessage{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.ChatRoleAssistant,
		Content:        out.Text,
		Metadata:       out.Metadata,
		CreatedAt:      now.Add(1 * time.Second),
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationMessageRepository().Create(ctx, &userMessage); err != nil {
		return err
	}
	if err := uow.ConversationMessageRepository().Create(ctx, &assistantMessage); err != nil {
		return err
	}

	conversation.UpdatedAt = &now
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return err
	}

	return uow.Commit()
}

func (cs *assistantService) GetAllConversations(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllConversationsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllConversationsResponse, 0, len(conversations))
	for _, c := range conversations {
		response = append(response, &dto.GetAllConversationsResponse{
			Id:        c.Id,
			ProjectId: c.ProjectId,
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	return response, nil
}

func (cs *assistantService) GetConversationHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetConversationHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation not found or access denied")
	}

	messages, err := uow.ConversationMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetConversationHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, &dto.GetConversationHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			Metadata:  msg.Metadata,
			CreatedAt: msg.CreatedAt,
		})
	}

	return response, nil
}

func (cs *assistantService) DeleteConversation(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return fmt.Errorf("conversation not found or access denied")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationMessageRepository().DeleteAllByConversationId(ctx, conversationId); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return err
	}

	return uow.Commit()
}

func titleFromMessage(message string) string {
	const maxTitle = 80
	if utf8.RuneCountInString(message) <= maxTitle {
		return message
	}
	runes := []rune(message)
	return string(runes[:maxTitle]) + "..."
}
