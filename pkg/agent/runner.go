package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"seo-assistant-be/internal/constant"
	"seo-assistant-be/pkg/llm"
	"seo-assistant-be/pkg/seodata"

	"github.com/google/uuid"
)

// KnowledgeRetriever is the optional context-augmentation hook. An empty
// excerpt means "proceed without augmentation" and never fails the turn.
type KnowledgeRetriever interface {
	RelevantKnowledge(query string, maxChars int) string
}

// TurnInput is everything one conversation turn needs.
type TurnInput struct {
	ConversationID uuid.UUID
	UserText       string
	History        []llm.Message // prior user/assistant turns, oldest first
	User           UserContext
}

// TurnOutput is the terminal state of one turn, for persistence.
type TurnOutput struct {
	Text        string
	Metadata    map[string]interface{}
	ToolResults []ToolResult
}

// Runner drives the two-phase turn loop. The loop is an explicit state
// machine: one model call, then either "final" (no tool calls) or
// "awaiting_tool_results" which executes the requested tools and makes
// exactly one more model call. There is never a third invocation.
type Runner struct {
	llmProvider llm.LLMProvider
	registry    *Registry
	executor    *Executor
	retriever   KnowledgeRetriever
	maxExcerpt  int
	llmLogger   *log.Logger
}

func NewRunner(
	llmProvider llm.LLMProvider,
	registry *Registry,
	executor *Executor,
	retriever KnowledgeRetriever,
	maxExcerptChars int,
	llmLogger *log.Logger,
) *Runner {
	return &Runner{
		llmProvider: llmProvider,
		registry:    registry,
		executor:    executor,
		retriever:   retriever,
		maxExcerpt:  maxExcerptChars,
		llmLogger:   llmLogger,
	}
}

// RunTurn processes one user message, emitting progress events to the sink
// and exactly one terminal event. A model-call failure fails the turn
// atomically; tool failures are folded into the second pass instead.
func (r *Runner) RunTurn(ctx context.Context, input TurnInput, sink Sink) (*TurnOutput, error) {
	messages := r.buildInput(input)

	first, err := r.llmProvider.ChatTools(ctx, messages, r.registry.LLMTools())
	if err != nil {
		r.llmLogger.Printf("[ERROR] first model call failed: %v", err)
		sink.Send(Event{Type: EventError, Error: "assistant is unavailable right now"})
		return nil, fmt.Errorf("model call: %w", err)
	}

	// Direct answer: no tool calls requested.
	if len(first.ToolCalls) == 0 {
		out := &TurnOutput{Text: first.Content}
		sink.Send(Event{
			Type:           EventMessage,
			Text:           out.Text,
			ConversationID: &input.ConversationID,
		})
		return out, nil
	}

	r.llmLogger.Printf("[TURN] model requested %d tool call(s)", len(first.ToolCalls))

	// Tool branch: execute sequentially in request order. A later tool may
	// depend on an earlier one's filtered output, and sequential execution
	// keeps failure attribution unambiguous.
	messages = append(messages, *first)
	results := make([]ToolResult, 0, len(first.ToolCalls))

	for _, call := range first.ToolCalls {
		result := r.executeCall(ctx, call, input.User, sink)
		results = append(results, result)
		messages = append(messages, llm.Message{
			Role:       constant.ChatRoleTool,
			Content:    renderToolContent(result),
			ToolCallID: call.ID,
		})
	}

	// Second and final model pass. Tools are not offered again: one round of
	// tool calls per turn, by design.
	answer, err := r.llmProvider.Chat(ctx, messages)
	if err != nil {
		r.llmLogger.Printf("[ERROR] second model call failed: %v", err)
		sink.Send(Event{Type: EventError, Error: "assistant is unavailable right now"})
		return nil, fmt.Errorf("model call: %w", err)
	}

	out := &TurnOutput{
		Text:        answer,
		Metadata:    buildMetadata(results),
		ToolResults: results,
	}
	sink.Send(Event{
		Type:           EventMessage,
		Text:           out.Text,
		ConversationID: &input.ConversationID,
		Metadata:       out.Metadata,
	})
	return out, nil
}

func (r *Runner) buildInput(input TurnInput) []llm.Message {
	messages := []llm.Message{
		{Role: constant.ChatRoleSystem, Content: constant.AssistantSystemPrompt},
	}

	if r.retriever != nil {
		if excerpt := r.retriever.RelevantKnowledge(input.UserText, r.maxExcerpt); excerpt != "" {
			r.llmLogger.Printf("[TURN] knowledge excerpt injected (%d chars)", len(excerpt))
			messages = append(messages, llm.Message{
				Role:    constant.ChatRoleSystem,
				Content: constant.KnowledgeExcerptHeader + excerpt,
			})
		}
	}

	messages = append(messages, input.History...)
	messages = append(messages, llm.Message{Role: constant.ChatRoleUser, Content: input.UserText})
	return messages
}

func (r *Runner) executeCall(ctx context.Context, call llm.ToolCall, uc UserContext, sink Sink) ToolResult {
	name := call.Function.Name

	args, err := ParseArgs(call.Function.Arguments)
	if err != nil {
		sink.Send(Event{Type: EventProgress, Status: fmt.Sprintf("Running %s...", name)})
		return ToolResult{Name: name, Success: false, Message: err.Error()}
	}

	if decl, ok := r.registry.Get(name); ok {
		sink.Send(Event{Type: EventProgress, Status: decl.StatusLine(args)})
	} else {
		sink.Send(Event{Type: EventProgress, Status: fmt.Sprintf("Running %s...", name)})
	}

	return r.executor.Execute(ctx, name, args, uc)
}

// renderToolContent produces the tool-role message for the second model pass.
// Keyword-shaped data is pre-formatted as bullets with the presentation
// instruction attached; failures carry the failure note so the model explains
// the gap honestly.
func renderToolContent(result ToolResult) string {
	if !result.Success {
		return fmt.Sprintf("Tool %s failed: %s\n\n%s", result.Name, result.Message, constant.ToolFailureNote)
	}

	if result.Kind == ResultKindKeywordList {
		return renderKeywordContent(result)
	}

	data, err := json.Marshal(result.Payload)
	if err != nil {
		return fmt.Sprintf("Tool %s returned a result that could not be serialized.", result.Name)
	}
	return fmt.Sprintf("Tool %s result:\n%s", result.Name, string(data))
}

func renderKeywordContent(result ToolResult) string {
	candidates, _ := result.Payload.([]seodata.KeywordCandidate)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Tool %s found %d new keywords (%d already tracked were removed):\n",
		result.Name, len(candidates), result.Removed)
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- %q: volume %d, difficulty %d, cpc $%.2f, intent %s, trend %s\n",
			c.Keyword, c.SearchVolume, c.Difficulty, c.CPC, c.Intent, c.Trend)
	}
	sb.WriteString("\n")
	sb.WriteString(constant.KeywordPresentationInstruction)
	return sb.String()
}

// buildMetadata collects successful payloads keyed by result kind for the
// terminal event. The keyword entry also carries the dedup counts.
func buildMetadata(results []ToolResult) map[string]interface{} {
	metadata := make(map[string]interface{})
	for _, res := range results {
		if !res.Success || res.Kind == "" {
			continue
		}
		if res.Kind == ResultKindKeywordList {
			metadata[string(res.Kind)] = map[string]interface{}{
				"keywords":      res.Payload,
				"fetched_count": res.FetchCount,
				"removed_count": res.Removed,
			}
			continue
		}
		metadata[string(res.Kind)] = res.Payload
	}
	if len(metadata) == 0 {
		return nil
	}
	return metadata
}
