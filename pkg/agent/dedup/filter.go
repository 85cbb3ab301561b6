package dedup

import (
	"context"
	"strings"

	"seo-assistant-be/pkg/seodata"

	"github.com/google/uuid"
)

// TrackedLookup resolves the active tracked keywords of a user across all
// their projects. The production implementation reads the repository layer;
// tests supply a fixed set.
type TrackedLookup interface {
	ActiveKeywords(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// Filter removes already-tracked keywords from freshly fetched candidate
// lists. It runs before any model sees the candidates and before any
// per-keyword enrichment, keeping the result deterministic and independent
// of model behavior.
type Filter struct {
	lookup TrackedLookup
}

func NewFilter(lookup TrackedLookup) *Filter {
	return &Filter{lookup: lookup}
}

// Normalize is the comparison form: lower-cased and whitespace-trimmed.
// Matching is exact on this form; "semrush alternative" does not filter
// "best semrush alternative".
func Normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// FilterTracked returns the candidates whose normalized keyword is not in
// the user's active tracked set, plus the number removed.
func (f *Filter) FilterTracked(ctx context.Context, userID uuid.UUID, candidates []seodata.KeywordCandidate) ([]seodata.KeywordCandidate, int, error) {
	tracked, err := f.lookup.ActiveKeywords(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	trackedSet := make(map[string]struct{}, len(tracked))
	for _, kw := range tracked {
		trackedSet[Normalize(kw)] = struct{}{}
	}

	filtered := make([]seodata.KeywordCandidate, 0, len(candidates))
	removed := 0
	for _, c := range candidates {
		if _, ok := trackedSet[Normalize(c.Keyword)]; ok {
			removed++
			continue
		}
		filtered = append(filtered, c)
	}

	return filtered, removed, nil
}
