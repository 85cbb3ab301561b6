package dedup

import (
	"context"
	"testing"

	"seo-assistant-be/pkg/seodata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedLookup struct {
	keywords []string
	err      error
}

func (f fixedLookup) ActiveKeywords(_ context.Context, _ uuid.UUID) ([]string, error) {
	return f.keywords, f.err
}

func candidates(keywords ...string) []seodata.KeywordCandidate {
	out := make([]seodata.KeywordCandidate, len(keywords))
	for i, kw := range keywords {
		out[i] = seodata.KeywordCandidate{Keyword: kw}
	}
	return out
}

func keywordsOf(list []seodata.KeywordCandidate) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Keyword
	}
	return out
}

func TestFilterTracked(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name        string
		tracked     []string
		input       []string
		want        []string
		wantRemoved int
	}{
		{
			name:        "case and whitespace variants removed",
			tracked:     []string{"seo tools", "best seo tools"},
			input:       []string{"seo tools", "cheap seo tools", "Best SEO Tools"},
			want:        []string{"cheap seo tools"},
			wantRemoved: 2,
		},
		{
			name:        "no fuzzy or partial matching",
			tracked:     []string{"semrush alternative"},
			input:       []string{"best semrush alternative", "semrush alternative"},
			want:        []string{"best semrush alternative"},
			wantRemoved: 1,
		},
		{
			name:        "leading and trailing whitespace normalized",
			tracked:     []string{"  link building  "},
			input:       []string{"link building", "link building tips"},
			want:        []string{"link building tips"},
			wantRemoved: 1,
		},
		{
			name:        "empty tracked set keeps everything",
			tracked:     nil,
			input:       []string{"a", "b"},
			want:        []string{"a", "b"},
			wantRemoved: 0,
		},
		{
			name:        "everything filtered is a valid outcome",
			tracked:     []string{"a", "b"},
			input:       []string{"A", " b "},
			want:        []string{},
			wantRemoved: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(fixedLookup{keywords: tt.tracked})
			got, removed, err := f.FilterTracked(context.Background(), userID, candidates(tt.input...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, keywordsOf(got))
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestFilterTrackedIdempotent(t *testing.T) {
	userID := uuid.New()
	f := NewFilter(fixedLookup{keywords: []string{"seo tools", "keyword gap"}})

	first, removed, err := f.FilterTracked(context.Background(), userID,
		candidates("seo tools", "rank tracker", "Keyword Gap", "serp api"))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	second, removedAgain, err := f.FilterTracked(context.Background(), userID, first)
	require.NoError(t, err)
	assert.Equal(t, 0, removedAgain, "filtering an already-filtered list must be a no-op")
	assert.Equal(t, keywordsOf(first), keywordsOf(second))
}

func TestFilterTrackedLookupError(t *testing.T) {
	f := NewFilter(fixedLookup{err: assert.AnError})
	_, _, err := f.FilterTracked(context.Background(), uuid.New(), candidates("x"))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "seo tools", Normalize("  SEO Tools "))
	assert.Equal(t, "", Normalize("   "))
}
