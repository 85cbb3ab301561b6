package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"seo-assistant-be/internal/pkg/logger"
	"seo-assistant-be/pkg/agent/dedup"
	"seo-assistant-be/pkg/seodata"

	"github.com/google/uuid"
)

// UserContext scopes a tool call to the acting user.
type UserContext struct {
	UserID    uuid.UUID
	ProjectID *uuid.UUID // the conversation's project, when set
}

// Handler performs one collaborator call. Returned payloads must be
// JSON-marshalable; errors become failed ToolResults, never panics.
type Handler func(ctx context.Context, args map[string]interface{}, uc UserContext) (interface{}, error)

// ToolResult is the normalized outcome of one tool call. Ephemeral: it lives
// only within one turn's processing.
type ToolResult struct {
	Name       string
	Kind       ResultKind
	Success    bool
	Payload    interface{}
	Status     string // human-readable progress line used for the event
	Message    string // failure description when Success is false
	Removed    int    // deduplicated count for keyword-shaped results
	FetchCount int    // pre-dedup count for keyword-shaped results
}

// Executor dispatches tool-call requests against the registry. Pure dispatch:
// argument validation and dedup piping, no business logic of its own.
type Executor struct {
	registry *Registry
	filter   *dedup.Filter
	timeout  time.Duration
	logger   logger.ILogger
}

func NewExecutor(registry *Registry, filter *dedup.Filter, timeout time.Duration, log logger.ILogger) *Executor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Executor{
		registry: registry,
		filter:   filter,
		timeout:  timeout,
		logger:   log,
	}
}

// ParseArgs decodes the model's JSON argument string. A decode failure is a
// schema violation handled tool-locally by the caller.
func ParseArgs(raw string) (map[string]interface{}, error) {
	if raw == "" {
		return map[string]interface{}{}, nil
	}
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("malformed tool arguments: %w", err)
	}
	return args, nil
}

// Execute runs one tool call and normalizes the outcome. All failure modes
// (unknown tool, missing argument, collaborator error, timeout) produce a
// failed ToolResult so the second model pass can explain the gap.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]interface{}, uc UserContext) ToolResult {
	decl, ok := e.registry.Get(name)
	if !ok {
		return ToolResult{
			Name:    name,
			Success: false,
			Message: fmt.Sprintf("unknown tool %q", name),
		}
	}

	result := ToolResult{
		Name:   name,
		Kind:   decl.ResultKind,
		Status: decl.StatusLine(args),
	}

	if err := validateArgs(decl, args); err != nil {
		result.Message = err.Error()
		return result
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	payload, err := decl.Handler(callCtx, args, uc)
	if err != nil {
		e.logger.Warn("ToolExecutor", "tool call failed", map[string]interface{}{
			"tool":  name,
			"error": err.Error(),
		})
		result.Message = err.Error()
		return result
	}

	// Keyword-shaped results pass through the dedup filter before anything
	// downstream (including the model) sees them.
	if decl.ResultKind == ResultKindKeywordList {
		candidates, ok := payload.([]seodata.KeywordCandidate)
		if !ok {
			result.Message = fmt.Sprintf("tool %q returned unexpected payload shape", name)
			return result
		}
		// The lookup behind the filter hits persistence, so it shares the
		// per-call deadline.
		filtered, removed, err := e.filter.FilterTracked(callCtx, uc.UserID, candidates)
		if err != nil {
			result.Message = fmt.Sprintf("keyword filtering failed: %v", err)
			return result
		}
		e.logger.Info("ToolExecutor", "keyword candidates deduplicated", map[string]interface{}{
			"tool":    name,
			"fetched": len(candidates),
			"kept":    len(filtered),
			"removed": removed,
		})
		result.FetchCount = len(candidates)
		result.Removed = removed
		payload = filtered
	}

	result.Success = true
	result.Payload = payload
	return result
}

func validateArgs(decl *Declaration, args map[string]interface{}) error {
	for _, p := range decl.Params {
		if !p.Required {
			continue
		}
		v, present := args[p.Name]
		if !present || v == nil {
			return fmt.Errorf("tool %q missing required argument %q", decl.Name, p.Name)
		}
		if s, isString := v.(string); isString && s == "" {
			return fmt.Errorf("tool %q missing required argument %q", decl.Name, p.Name)
		}
	}
	return nil
}

// StringArg reads an optional string argument.
func StringArg(args map[string]interface{}, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}

// IntArg reads an optional integer argument. JSON numbers decode as float64.
func IntArg(args map[string]interface{}, name string) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
