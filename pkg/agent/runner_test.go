package agent

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"seo-assistant-be/internal/constant"
	"seo-assistant-be/internal/pkg/logger"
	"seo-assistant-be/pkg/agent/dedup"
	"seo-assistant-be/pkg/llm"
	"seo-assistant-be/pkg/seodata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider returns canned responses and records every invocation.
type scriptedProvider struct {
	toolResponses []*llm.Message // consumed by successive ChatTools calls
	toolErr       error
	chatResponse  string
	chatErr       error

	chatToolsCalls int
	chatCalls      int
	lastChatInput  []llm.Message
}

func (s *scriptedProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	s.chatCalls++
	s.lastChatInput = history
	if s.chatErr != nil {
		return "", s.chatErr
	}
	return s.chatResponse, nil
}

func (s *scriptedProvider) ChatTools(_ context.Context, history []llm.Message, _ []llm.Tool, _ ...llm.Option) (*llm.Message, error) {
	s.chatToolsCalls++
	s.lastChatInput = history
	if s.toolErr != nil {
		return nil, s.toolErr
	}
	idx := s.chatToolsCalls - 1
	if idx >= len(s.toolResponses) {
		return &llm.Message{Role: "assistant", Content: "done"}, nil
	}
	return s.toolResponses[idx], nil
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

// collectorSink records events in arrival order.
type collectorSink struct {
	events []Event
}

func (c *collectorSink) Send(event Event) error {
	c.events = append(c.events, event)
	return nil
}

type staticRetriever struct {
	excerpt string
}

func (s staticRetriever) RelevantKnowledge(_ string, _ int) string {
	return s.excerpt
}

func toolCall(id, name, args string) llm.ToolCall {
	return llm.ToolCall{
		ID:   id,
		Type: "function",
		Function: llm.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

func newTestRunner(provider llm.LLMProvider, registry *Registry, retriever KnowledgeRetriever, tracked ...string) *Runner {
	executor := NewExecutor(
		registry,
		dedup.NewFilter(fixedLookup{keywords: tracked}),
		5*time.Second,
		logger.NewNopLogger(),
	)
	return NewRunner(provider, registry, executor, retriever, 15000, log.New(io.Discard, "", 0))
}

func keywordRegistry(t *testing.T, handler Handler) *Registry {
	t.Helper()
	registry := NewRegistry()
	registry.MustRegister(&Declaration{
		Name:        "research_keywords",
		Description: "Fetch keyword suggestions",
		Params:      []Param{{Name: "query", Type: "string", Required: true}},
		ResultKind:  ResultKindKeywordList,
		Status: func(args map[string]interface{}) string {
			return "Researching keywords for \"" + StringArg(args, "query") + "\"..."
		},
		Handler: handler,
	})
	return registry
}

func TestRunTurnDirectAnswer(t *testing.T) {
	provider := &scriptedProvider{
		toolResponses: []*llm.Message{{Role: "assistant", Content: "A canonical tag points to the preferred URL."}},
	}
	runner := newTestRunner(provider, NewRegistry(), nil)
	sink := &collectorSink{}

	out, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "What is a canonical tag?",
		User:           UserContext{UserID: uuid.New()},
	}, sink)
	require.NoError(t, err)

	assert.Equal(t, "A canonical tag points to the preferred URL.", out.Text)
	require.Len(t, sink.events, 1)
	assert.Equal(t, EventMessage, sink.events[0].Type)
	assert.Equal(t, 1, provider.chatToolsCalls)
	assert.Equal(t, 0, provider.chatCalls)
}

func TestRunTurnSingleToolRoundInvariant(t *testing.T) {
	// Even if the second pass were to ask for tools again it never gets the
	// chance: the runner calls the plain Chat endpoint exactly once.
	provider := &scriptedProvider{
		toolResponses: []*llm.Message{
			{Role: "assistant", ToolCalls: []llm.ToolCall{
				toolCall("c1", "research_keywords", `{"query":"seo tools"}`),
				toolCall("c2", "research_keywords", `{"query":"rank tracker"}`),
			}},
		},
		chatResponse: "Here is what I found.",
	}
	registry := keywordRegistry(t, func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
		return []seodata.KeywordCandidate{{Keyword: "x"}}, nil
	})
	runner := newTestRunner(provider, registry, nil)
	sink := &collectorSink{}

	_, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "find keywords",
		User:           UserContext{UserID: uuid.New()},
	}, sink)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.chatToolsCalls, "exactly one tool-bearing model call")
	assert.Equal(t, 1, provider.chatCalls, "exactly one follow-up model call")
}

func TestRunTurnStreamingOrder(t *testing.T) {
	provider := &scriptedProvider{
		toolResponses: []*llm.Message{
			{Role: "assistant", ToolCalls: []llm.ToolCall{
				toolCall("c1", "research_keywords", `{"query":"first"}`),
				toolCall("c2", "research_keywords", `{"query":"second"}`),
			}},
		},
		chatResponse: "answer",
	}
	registry := keywordRegistry(t, func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
		return []seodata.KeywordCandidate{}, nil
	})
	runner := newTestRunner(provider, registry, nil)
	sink := &collectorSink{}

	_, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "go",
		User:           UserContext{UserID: uuid.New()},
	}, sink)
	require.NoError(t, err)

	require.Len(t, sink.events, 3)
	assert.Equal(t, EventProgress, sink.events[0].Type)
	assert.Equal(t, `Researching keywords for "first"...`, sink.events[0].Status)
	assert.Equal(t, EventProgress, sink.events[1].Type)
	assert.Equal(t, `Researching keywords for "second"...`, sink.events[1].Status)
	assert.Equal(t, EventMessage, sink.events[2].Type)
}

func TestRunTurnToolFailureIsolation(t *testing.T) {
	calls := 0
	registry := NewRegistry()
	registry.MustRegister(&Declaration{
		Name:       "backlink_overview",
		ResultKind: ResultKindBacklinks,
		Handler: func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
			calls++
			return nil, errors.New("provider timeout")
		},
	})
	registry.MustRegister(&Declaration{
		Name:       "check_ranking",
		ResultKind: ResultKindRank,
		Handler: func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
			calls++
			pos := 3
			return &seodata.RankResult{Keyword: "seo audit", Domain: "example.com", Position: &pos}, nil
		},
	})

	provider := &scriptedProvider{
		toolResponses: []*llm.Message{
			{Role: "assistant", ToolCalls: []llm.ToolCall{
				toolCall("c1", "backlink_overview", `{"domain":"example.com"}`),
				toolCall("c2", "check_ranking", `{"keyword":"seo audit","domain":"example.com"}`),
			}},
		},
		chatResponse: "Backlinks are unavailable; you rank #3 for seo audit.",
	}
	runner := newTestRunner(provider, registry, nil)
	sink := &collectorSink{}

	out, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "check both",
		User:           UserContext{UserID: uuid.New()},
	}, sink)
	require.NoError(t, err, "a single tool failure must not fail the turn")

	assert.Equal(t, 2, calls, "second tool still runs after the first fails")

	// The failure is visible in the second-pass context with the honesty note.
	var toolMessages []llm.Message
	for _, m := range provider.lastChatInput {
		if m.Role == constant.ChatRoleTool {
			toolMessages = append(toolMessages, m)
		}
	}
	require.Len(t, toolMessages, 2)
	assert.Contains(t, toolMessages[0].Content, "failed: provider timeout")
	assert.Contains(t, toolMessages[0].Content, constant.ToolFailureNote)
	assert.Contains(t, toolMessages[1].Content, "check_ranking")

	// Only the successful result lands in the metadata.
	assert.NotContains(t, out.Metadata, string(ResultKindBacklinks))
	assert.Contains(t, out.Metadata, string(ResultKindRank))
}

func TestRunTurnModelFailureIsAtomic(t *testing.T) {
	provider := &scriptedProvider{toolErr: errors.New("connection refused")}
	runner := newTestRunner(provider, NewRegistry(), nil)
	sink := &collectorSink{}

	_, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "hello",
		User:           UserContext{UserID: uuid.New()},
	}, sink)
	require.Error(t, err)

	require.Len(t, sink.events, 1)
	assert.Equal(t, EventError, sink.events[0].Type)
}

func TestRunTurnSecondModelFailureIsAtomic(t *testing.T) {
	provider := &scriptedProvider{
		toolResponses: []*llm.Message{
			{Role: "assistant", ToolCalls: []llm.ToolCall{
				toolCall("c1", "research_keywords", `{"query":"x"}`),
			}},
		},
		chatErr: errors.New("timeout"),
	}
	registry := keywordRegistry(t, func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
		return []seodata.KeywordCandidate{}, nil
	})
	runner := newTestRunner(provider, registry, nil)
	sink := &collectorSink{}

	_, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "x",
		User:           UserContext{UserID: uuid.New()},
	}, sink)
	require.Error(t, err)

	// progress for the tool, then the terminal error - no message event
	require.Len(t, sink.events, 2)
	assert.Equal(t, EventProgress, sink.events[0].Type)
	assert.Equal(t, EventError, sink.events[1].Type)
}

func TestRunTurnKeywordInstructionAlwaysPresent(t *testing.T) {
	provider := &scriptedProvider{
		toolResponses: []*llm.Message{
			{Role: "assistant", ToolCalls: []llm.ToolCall{
				toolCall("c1", "research_keywords", `{"query":"seo tools"}`),
			}},
		},
		chatResponse: "summary",
	}
	registry := keywordRegistry(t, func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
		return []seodata.KeywordCandidate{
			{Keyword: "seo tools", SearchVolume: 1000, Difficulty: 40},
			{Keyword: "free seo tools", SearchVolume: 800, Difficulty: 35},
		}, nil
	})
	runner := newTestRunner(provider, registry, nil)

	_, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "keyword ideas",
		User:           UserContext{UserID: uuid.New()},
	}, &collectorSink{})
	require.NoError(t, err)

	found := false
	for _, m := range provider.lastChatInput {
		if m.Role == constant.ChatRoleTool && strings.Contains(m.Content, constant.KeywordPresentationInstruction) {
			found = true
		}
	}
	assert.True(t, found, "presentation instruction must accompany keyword-shaped tool data")
}

func TestRunTurnUnknownToolSurfacedNotSwallowed(t *testing.T) {
	provider := &scriptedProvider{
		toolResponses: []*llm.Message{
			{Role: "assistant", ToolCalls: []llm.ToolCall{
				toolCall("c1", "made_up_tool", `{}`),
			}},
		},
		chatResponse: "that capability is unavailable",
	}
	runner := newTestRunner(provider, NewRegistry(), nil)
	sink := &collectorSink{}

	out, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "do the thing",
		User:           UserContext{UserID: uuid.New()},
	}, sink)
	require.NoError(t, err)
	require.Len(t, out.ToolResults, 1)
	assert.False(t, out.ToolResults[0].Success)
	assert.Contains(t, out.ToolResults[0].Message, "unknown tool")

	// The failure reaches the model, not the void.
	found := false
	for _, m := range provider.lastChatInput {
		if m.Role == constant.ChatRoleTool && strings.Contains(m.Content, "unknown tool") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRunTurnKnowledgeInjection(t *testing.T) {
	provider := &scriptedProvider{
		toolResponses: []*llm.Message{{Role: "assistant", Content: "answer"}},
	}
	runner := newTestRunner(provider, NewRegistry(), staticRetriever{excerpt: "Crawl budget is finite."})

	_, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "crawl question",
		User:           UserContext{UserID: uuid.New()},
	}, &collectorSink{})
	require.NoError(t, err)

	found := false
	for _, m := range provider.lastChatInput {
		if m.Role == constant.ChatRoleSystem && strings.Contains(m.Content, "Crawl budget is finite.") {
			found = true
		}
	}
	assert.True(t, found, "knowledge excerpt should be injected as a system message")
}

func TestRunTurnEmptyExcerptProceedsUnaugmented(t *testing.T) {
	provider := &scriptedProvider{
		toolResponses: []*llm.Message{{Role: "assistant", Content: "answer"}},
	}
	runner := newTestRunner(provider, NewRegistry(), staticRetriever{excerpt: ""})

	out, err := runner.RunTurn(context.Background(), TurnInput{
		ConversationID: uuid.New(),
		UserText:       "anything",
		User:           UserContext{UserID: uuid.New()},
	}, &collectorSink{})
	require.NoError(t, err)
	assert.Equal(t, "answer", out.Text)

	// just the base system prompt, no knowledge block
	systemCount := 0
	for _, m := range provider.lastChatInput {
		if m.Role == constant.ChatRoleSystem {
			systemCount++
		}
	}
	assert.Equal(t, 1, systemCount)
}
