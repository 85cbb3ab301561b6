package knowledge

import (
	"strings"
)

const (
	// DefaultMaxExcerptChars bounds the assembled excerpt.
	DefaultMaxExcerptChars = 15000

	maxTopicsPerQuery  = 3
	maxChunksPerTopic  = 3
	excerptChunkJoiner = "\n\n---\n\n"
)

// topicPattern maps a topic tag to the lowercase keywords that trigger it.
type topicPattern struct {
	Topic    string
	Keywords []string
}

// defaultPatterns is the fixed topic detection table. Order matters: topics
// are kept first-matched-first.
var defaultPatterns = []topicPattern{
	{Topic: "ranking-mechanics", Keywords: []string{"algorithm", "ranking signal", "ranking factor", "serp", "why do i rank", "position"}},
	{Topic: "keyword-research", Keywords: []string{"keyword", "search volume", "search intent", "long-tail", "difficulty"}},
	{Topic: "link-building", Keywords: []string{"backlink", "link building", "referring domain", "domain authority", "anchor text"}},
	{Topic: "technical-seo", Keywords: []string{"crawl", "index", "sitemap", "page speed", "core web vitals", "meta description", "canonical", "robots.txt"}},
	{Topic: "content-strategy", Keywords: []string{"content", "blog post", "topic cluster", "e-e-a-t", "duplicate"}},
	{Topic: "local-seo", Keywords: []string{"local", "google business", "map pack", "citation"}},
}

// Retriever assembles bounded knowledge excerpts from the store using
// keyword-pattern topic detection. No embedding similarity involved;
// retrieval stays deterministic and cheap.
type Retriever struct {
	store    *Store
	patterns []topicPattern
}

func NewRetriever(store *Store) *Retriever {
	return &Retriever{
		store:    store,
		patterns: defaultPatterns,
	}
}

// DetectTopics scans the query against the pattern table. At most three
// topics are returned, in first-matched order.
func (r *Retriever) DetectTopics(query string) []string {
	lower := strings.ToLower(query)
	var topics []string
	for _, p := range r.patterns {
		for _, kw := range p.Keywords {
			if strings.Contains(lower, kw) {
				topics = append(topics, p.Topic)
				break
			}
		}
		if len(topics) >= maxTopicsPerQuery {
			break
		}
	}
	return topics
}

// RelevantKnowledge returns a knowledge excerpt for the query, bounded by
// maxChars. Empty string means "proceed without augmentation" and is never
// an error condition.
func (r *Retriever) RelevantKnowledge(query string, maxChars int) string {
	if r.store == nil || r.store.Len() == 0 {
		return ""
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxExcerptChars
	}

	topics := r.DetectTopics(query)
	if len(topics) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, topic := range topics {
		candidates := r.store.ChunksForTopic(topic)
		if len(candidates) > maxChunksPerTopic {
			candidates = candidates[:maxChunksPerTopic]
		}
		for _, c := range candidates {
			add := len(c.Content)
			if sb.Len() > 0 {
				add += len(excerptChunkJoiner)
			}
			// A chunk that would overflow the budget is skipped whole.
			// Partial chunks would emit sentence fragments.
			if sb.Len()+add > maxChars {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString(excerptChunkJoiner)
			}
			sb.WriteString(c.Content)
		}
	}

	return sb.String()
}
