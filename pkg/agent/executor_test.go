package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"seo-assistant-be/internal/pkg/logger"
	"seo-assistant-be/pkg/agent/dedup"
	"seo-assistant-be/pkg/seodata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fixedLookup struct {
	keywords []string
}

func (f fixedLookup) ActiveKeywords(_ context.Context, _ uuid.UUID) ([]string, error) {
	return f.keywords, nil
}

func newTestExecutor(registry *Registry, tracked ...string) *Executor {
	return NewExecutor(
		registry,
		dedup.NewFilter(fixedLookup{keywords: tracked}),
		5*time.Second,
		logger.NewNopLogger(),
	)
}

func TestExecuteUnknownTool(t *testing.T) {
	e := newTestExecutor(NewRegistry())
	result := e.Execute(context.Background(), "does_not_exist", nil, UserContext{UserID: uuid.New()})

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "unknown tool")
}

func TestExecuteMissingRequiredArgument(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&Declaration{
		Name:   "check_ranking",
		Params: []Param{{Name: "keyword", Type: "string", Required: true}},
		Handler: func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
			t.Fatal("handler must not run on schema violation")
			return nil, nil
		},
	})
	e := newTestExecutor(registry)

	for _, args := range []map[string]interface{}{
		{},
		{"keyword": nil},
		{"keyword": ""},
	} {
		result := e.Execute(context.Background(), "check_ranking", args, UserContext{UserID: uuid.New()})
		assert.False(t, result.Success)
		assert.Contains(t, result.Message, `missing required argument "keyword"`)
	}
}

func TestExecuteHandlerErrorIsToolLocal(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&Declaration{
		Name: "analyze_site",
		Handler: func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
			return nil, errors.New("provider timeout")
		},
	})
	e := newTestExecutor(registry)

	result := e.Execute(context.Background(), "analyze_site", map[string]interface{}{}, UserContext{UserID: uuid.New()})
	assert.False(t, result.Success)
	assert.Equal(t, "provider timeout", result.Message)
}

func TestExecuteKeywordResultsAreDeduplicated(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&Declaration{
		Name:       "research_keywords",
		ResultKind: ResultKindKeywordList,
		Handler: func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
			return []seodata.KeywordCandidate{
				{Keyword: "seo tools"},
				{Keyword: "cheap seo tools"},
				{Keyword: "Best SEO Tools"},
			}, nil
		},
	})
	e := newTestExecutor(registry, "seo tools", "best seo tools")

	result := e.Execute(context.Background(), "research_keywords", map[string]interface{}{}, UserContext{UserID: uuid.New()})

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.FetchCount)
	assert.Equal(t, 2, result.Removed)

	kept, ok := result.Payload.([]seodata.KeywordCandidate)
	assert.True(t, ok)
	assert.Len(t, kept, 1)
	assert.Equal(t, "cheap seo tools", kept[0].Keyword)
}

func TestExecuteSuccessPayloadPassthrough(t *testing.T) {
	pos := 4
	registry := NewRegistry()
	registry.MustRegister(&Declaration{
		Name:       "check_ranking",
		ResultKind: ResultKindRank,
		Handler: func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
			return &seodata.RankResult{Keyword: "seo audit", Domain: "example.com", Position: &pos}, nil
		},
	})
	e := newTestExecutor(registry)

	result := e.Execute(context.Background(), "check_ranking", map[string]interface{}{"keyword": "seo audit"}, UserContext{UserID: uuid.New()})
	assert.True(t, result.Success)
	rank, ok := result.Payload.(*seodata.RankResult)
	assert.True(t, ok)
	assert.Equal(t, 4, *rank.Position)
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs(`{"query":"seo tools","limit":10}`)
	assert.NoError(t, err)
	assert.Equal(t, "seo tools", StringArg(args, "query"))
	assert.Equal(t, 10, IntArg(args, "limit"))

	args, err = ParseArgs("")
	assert.NoError(t, err)
	assert.Empty(t, args)

	_, err = ParseArgs("{broken")
	assert.Error(t, err)
}

type deadlineLookup struct {
	ctx context.Context
}

func (l *deadlineLookup) ActiveKeywords(ctx context.Context, _ uuid.UUID) ([]string, error) {
	l.ctx = ctx
	return nil, nil
}

func TestExecuteDedupLookupSharesToolDeadline(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&Declaration{
		Name:       "research_keywords",
		ResultKind: ResultKindKeywordList,
		Handler: func(_ context.Context, _ map[string]interface{}, _ UserContext) (interface{}, error) {
			return []seodata.KeywordCandidate{{Keyword: "seo checklist"}}, nil
		},
	})
	lookup := &deadlineLookup{}
	e := NewExecutor(registry, dedup.NewFilter(lookup), 5*time.Second, logger.NewNopLogger())

	result := e.Execute(context.Background(), "research_keywords", nil, UserContext{UserID: uuid.New()})

	assert.True(t, result.Success)
	assert.NotNil(t, lookup.ctx)
	_, hasDeadline := lookup.ctx.Deadline()
	assert.True(t, hasDeadline)
}
