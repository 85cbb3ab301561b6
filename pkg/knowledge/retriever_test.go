package knowledge

import (
	"strings"
	"testing"
)

func TestDetectTopics(t *testing.T) {
	r := NewRetriever(NewStore(nil, 0))

	tests := []struct {
		name       string
		query      string
		wantTopics []string
	}{
		{
			name:       "single topic",
			query:      "How does the ranking algorithm treat new pages?",
			wantTopics: []string{"ranking-mechanics"},
		},
		{
			name:       "multiple topics in pattern order",
			query:      "Does keyword difficulty matter more than backlink count?",
			wantTopics: []string{"keyword-research", "link-building"},
		},
		{
			name:       "capped at three topics",
			query:      "algorithm keyword backlink crawl content local",
			wantTopics: []string{"ranking-mechanics", "keyword-research", "link-building"},
		},
		{
			name:       "no match",
			query:      "hello there",
			wantTopics: nil,
		},
		{
			name:       "case insensitive",
			query:      "What is a RANKING SIGNAL?",
			wantTopics: []string{"ranking-mechanics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.DetectTopics(tt.query)
			if len(got) != len(tt.wantTopics) {
				t.Fatalf("topics = %v, want %v", got, tt.wantTopics)
			}
			for i := range got {
				if got[i] != tt.wantTopics[i] {
					t.Errorf("topic[%d] = %q, want %q", i, got[i], tt.wantTopics[i])
				}
			}
		})
	}
}

func TestRelevantKnowledgeSizeBound(t *testing.T) {
	chunks := []Chunk{
		{Topic: "ranking-mechanics", Content: strings.Repeat("a", 6000)},
		{Topic: "ranking-mechanics", Content: strings.Repeat("b", 6000)},
		{Topic: "ranking-mechanics", Content: strings.Repeat("c", 6000)},
	}
	r := NewRetriever(NewStore(chunks, 0))

	for _, maxChars := range []int{5000, 10000, 15000, 20000} {
		got := r.RelevantKnowledge("explain the algorithm", maxChars)
		if len(got) > maxChars {
			t.Errorf("maxChars=%d: excerpt length %d exceeds bound", maxChars, len(got))
		}
	}
}

func TestRelevantKnowledgeOverflowChunkSkippedWhole(t *testing.T) {
	maxChars := 1000
	// A single chunk one byte over budget must be excluded entirely,
	// never truncated.
	chunks := []Chunk{
		{Topic: "ranking-mechanics", Content: strings.Repeat("x", maxChars+1)},
	}
	r := NewRetriever(NewStore(chunks, 0))

	got := r.RelevantKnowledge("ranking signal question", maxChars)
	if got != "" {
		t.Errorf("expected empty excerpt, got %d chars", len(got))
	}
}

func TestRelevantKnowledgeSkipsOversizedChunkButKeepsLater(t *testing.T) {
	chunks := []Chunk{
		{Topic: "ranking-mechanics", Content: strings.Repeat("x", 900)},
		{Topic: "ranking-mechanics", Content: strings.Repeat("y", 200)},
	}
	r := NewRetriever(NewStore(chunks, 0))

	// 900 fits; 200 plus joiner would overflow 1000 and is skipped whole.
	got := r.RelevantKnowledge("serp question", 1000)
	if len(got) != 900 {
		t.Errorf("excerpt length = %d, want 900", len(got))
	}
}

func TestRelevantKnowledgeNoMatchReturnsEmpty(t *testing.T) {
	chunks := []Chunk{{Topic: "ranking-mechanics", Content: "something"}}
	r := NewRetriever(NewStore(chunks, 0))

	if got := r.RelevantKnowledge("unrelated chatter", 15000); got != "" {
		t.Errorf("expected empty excerpt on topic miss, got %q", got)
	}
}

func TestRelevantKnowledgeEmptyStore(t *testing.T) {
	r := NewRetriever(NewStore(nil, 0))
	if got := r.RelevantKnowledge("ranking signal", 15000); got != "" {
		t.Errorf("expected empty excerpt from empty store, got %q", got)
	}
}

func TestStoreExcludesChunksOverSizeCeiling(t *testing.T) {
	chunks := []Chunk{
		{Topic: "ranking-mechanics", Content: strings.Repeat("x", 600)},
		{Topic: "ranking-mechanics", Content: "small"},
	}
	s := NewStore(chunks, 500)

	got := s.ChunksForTopic("ranking-mechanics")
	if len(got) != 1 || got[0].Content != "small" {
		t.Errorf("oversized chunk not excluded: %v", got)
	}
}

func TestChunksPerTopicCap(t *testing.T) {
	var chunks []Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, Chunk{Topic: "keyword-research", Content: strings.Repeat("k", 10)})
	}
	r := NewRetriever(NewStore(chunks, 0))

	got := r.RelevantKnowledge("keyword question", 15000)
	// 3 chunks of 10 chars joined by the separator
	want := 3*10 + 2*len(excerptChunkJoiner)
	if len(got) != want {
		t.Errorf("excerpt length = %d, want %d (3-chunk cap)", len(got), want)
	}
}
