package toolset

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"seo-assistant-be/internal/entity"
	"seo-assistant-be/internal/repository/specification"
	"seo-assistant-be/internal/repository/unitofwork"
	"seo-assistant-be/internal/service"
	"seo-assistant-be/pkg/agent"
	"seo-assistant-be/pkg/events"
	"seo-assistant-be/pkg/seodata"

	"github.com/google/uuid"
)

// Deps carries the collaborators the assistant's tools dispatch to.
type Deps struct {
	UowFactory     unitofwork.RepositoryFactory
	Keywords       seodata.KeywordResearcher
	Ranks          seodata.RankChecker
	Sites          seodata.SiteAnalyzer
	Backlinks      seodata.BacklinkReader
	ProjectService service.IProjectService
	EventPublisher events.Publisher
}

// NewRegistry assembles the assistant's tool registry. Registration order is
// the order tools are presented to the model.
func NewRegistry(deps Deps) *agent.Registry {
	registry := agent.NewRegistry()

	registry.MustRegister(&agent.Declaration{
		Name:        "research_keywords",
		Description: "Find keyword suggestions for a topic or seed phrase, with search volume, difficulty, CPC and intent. Keywords the user already tracks are filtered out automatically.",
		Params: []agent.Param{
			{Name: "query", Type: "string", Description: "Seed phrase or topic to research", Required: true},
			{Name: "location", Type: "string", Description: "Optional location for localized volumes, e.g. \"London, UK\""},
			{Name: "limit", Type: "integer", Description: "Maximum suggestions to fetch, default 20"},
		},
		ResultKind: agent.ResultKindKeywordList,
		Status: func(args map[string]interface{}) string {
			return fmt.Sprintf("Researching keywords for %q...", agent.StringArg(args, "query"))
		},
		Handler: researchKeywordsHandler(deps),
	})

	registry.MustRegister(&agent.Declaration{
		Name:        "check_ranking",
		Description: "Check where a domain currently ranks in search results for a keyword.",
		Params: []agent.Param{
			{Name: "keyword", Type: "string", Description: "Keyword to check", Required: true},
			{Name: "domain", Type: "string", Description: "Domain to look for, e.g. example.com", Required: true},
		},
		ResultKind: agent.ResultKindRank,
		Status: func(args map[string]interface{}) string {
			return fmt.Sprintf("Checking ranking of %s for %q...", agent.StringArg(args, "domain"), agent.StringArg(args, "keyword"))
		},
		Handler: checkRankingHandler(deps),
	})

	registry.MustRegister(&agent.Declaration{
		Name:        "analyze_site",
		Description: "Run an on-page audit of a URL: title, meta description, heading structure and detected issues.",
		Params: []agent.Param{
			{Name: "url", Type: "string", Description: "Full URL of the page to audit", Required: true},
		},
		ResultKind: agent.ResultKindSiteAudit,
		Status: func(args map[string]interface{}) string {
			return fmt.Sprintf("Analyzing %s...", agent.StringArg(args, "url"))
		},
		Handler: analyzeSiteHandler(deps),
	})

	registry.MustRegister(&agent.Declaration{
		Name:        "backlink_overview",
		Description: "Get a backlink profile summary for a domain: total backlinks, referring domains, authority and sample links.",
		Params: []agent.Param{
			{Name: "domain", Type: "string", Description: "Domain to inspect, e.g. example.com", Required: true},
		},
		ResultKind: agent.ResultKindBacklinks,
		Status: func(args map[string]interface{}) string {
			return fmt.Sprintf("Fetching backlink profile of %s...", agent.StringArg(args, "domain"))
		},
		Handler: backlinkOverviewHandler(deps),
	})

	registry.MustRegister(&agent.Declaration{
		Name:        "project_status",
		Description: "Summarize one of the user's projects: active tracked keywords and their latest recorded positions.",
		Params: []agent.Param{
			{Name: "project_id", Type: "string", Description: "Project id; defaults to the conversation's project"},
		},
		ResultKind: agent.ResultKindProject,
		Status: func(args map[string]interface{}) string {
			return "Collecting project status..."
		},
		Handler: projectStatusHandler(deps),
	})

	return registry
}

func researchKeywordsHandler(deps Deps) agent.Handler {
	return func(ctx context.Context, args map[string]interface{}, uc agent.UserContext) (interface{}, error) {
		query := agent.StringArg(args, "query")
		location := agent.StringArg(args, "location")
		limit := agent.IntArg(args, "limit")

		// fall back to the conversation project's location
		if location == "" && uc.ProjectID != nil {
			uow := deps.UowFactory.NewUnitOfWork(ctx)
			project, err := uow.ProjectRepository().FindOne(ctx,
				specification.ByID{ID: *uc.ProjectID},
				specification.UserOwnedBy{UserID: uc.UserID},
			)
			if err == nil && project != nil {
				location = project.Location
			}
		}

		return deps.Keywords.ResearchKeywords(ctx, query, location, limit)
	}
}

func checkRankingHandler(deps Deps) agent.Handler {
	return func(ctx context.Context, args map[string]interface{}, uc agent.UserContext) (interface{}, error) {
		keyword := agent.StringArg(args, "keyword")
		domain := agent.StringArg(args, "domain")

		result, err := deps.Ranks.CheckRank(ctx, keyword, domain)
		if err != nil {
			return nil, err
		}

		// When the keyword is one the user tracks, keep the check as history
		// so project_status can surface rank movement later.
		recordRankCheck(ctx, deps, uc, keyword, result)

		return result, nil
	}
}

func recordRankCheck(ctx context.Context, deps Deps, uc agent.UserContext, keyword string, result *seodata.RankResult) {
	if uc.ProjectID == nil {
		return
	}

	uow := deps.UowFactory.NewUnitOfWork(ctx)
	tracked, err := uow.TrackedKeywordRepository().FindAll(ctx,
		specification.ByProjectID{ProjectID: *uc.ProjectID},
		specification.ActiveKeywords{},
	)
	if err != nil {
		return
	}

	target := strings.ToLower(strings.TrimSpace(keyword))
	for _, k := range tracked {
		if strings.ToLower(strings.TrimSpace(k.Keyword)) != target {
			continue
		}

		previous, _ := uow.KeywordRankHistoryRepository().FindLatestByKeywordIds(ctx, []uuid.UUID{k.Id})

		history := entity.KeywordRankHistory{
			Id:        uuid.New(),
			KeywordId: k.Id,
			Position:  result.Position,
			PageURL:   result.PageURL,
			CheckedAt: time.Now(),
		}
		// best effort, a failed history write never fails the tool
		if err := uow.KeywordRankHistoryRepository().Create(ctx, &history); err != nil {
			return
		}

		if prev, ok := previous[k.Id]; ok && prev != nil {
			publishRankChanged(ctx, deps, uc, k.Keyword, prev.Position, result.Position)
		}
		return
	}
}

// publishRankChanged emits a notification event when a tracked keyword's
// position moved since the last recorded check. Best effort.
func publishRankChanged(ctx context.Context, deps Deps, uc agent.UserContext, keyword string, oldPos, newPos *int) {
	if deps.EventPublisher == nil || samePosition(oldPos, newPos) {
		return
	}

	evt := events.BaseEvent{
		Type: "RANK_CHANGED",
		Data: map[string]interface{}{
			"keyword":      keyword,
			"old_position": positionLabel(oldPos),
			"new_position": positionLabel(newPos),
			"user_id":      uc.UserID,
		},
		OccurredAt: time.Now(),
	}
	if err := deps.EventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish RANK_CHANGED event: %v", err)
	}
}

func samePosition(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func positionLabel(p *int) interface{} {
	if p == nil {
		return "unranked"
	}
	return *p
}

func analyzeSiteHandler(deps Deps) agent.Handler {
	return func(ctx context.Context, args map[string]interface{}, _ agent.UserContext) (interface{}, error) {
		return deps.Sites.AnalyzeSite(ctx, agent.StringArg(args, "url"))
	}
}

func backlinkOverviewHandler(deps Deps) agent.Handler {
	return func(ctx context.Context, args map[string]interface{}, _ agent.UserContext) (interface{}, error) {
		return deps.Backlinks.BacklinkOverview(ctx, agent.StringArg(args, "domain"))
	}
}

func projectStatusHandler(deps Deps) agent.Handler {
	return func(ctx context.Context, args map[string]interface{}, uc agent.UserContext) (interface{}, error) {
		var projectId uuid.UUID
		if raw := agent.StringArg(args, "project_id"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid project_id %q", raw)
			}
			projectId = parsed
		} else if uc.ProjectID != nil {
			projectId = *uc.ProjectID
		} else {
			return nil, fmt.Errorf("no project selected: pass project_id or attach the conversation to a project")
		}

		return deps.ProjectService.Status(ctx, uc.UserID, projectId)
	}
}
