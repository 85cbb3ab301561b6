package knowledge

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"seo-assistant-be/pkg/utils"
)

const (
	// DefaultMaxChunkBytes excludes oversized chunks from retrieval entirely.
	DefaultMaxChunkBytes = 100 * 1024

	chunkTargetSize = 4000
	chunkOverlap    = 200
)

// Chunk is an immutable topic-tagged slice of the reference corpus.
type Chunk struct {
	Topic   string
	Content string
	Size    int // byte size, recorded at load time
}

// Store holds the chunked reference corpus. Built once at startup and
// read-only afterwards, so concurrent reads need no locking.
type Store struct {
	chunks        []Chunk
	byTopic       map[string][]int // topic -> chunk indexes in stable load order
	maxChunkBytes int
}

// NewStore builds a store from pre-chunked content.
func NewStore(chunks []Chunk, maxChunkBytes int) *Store {
	if maxChunkBytes <= 0 {
		maxChunkBytes = DefaultMaxChunkBytes
	}
	s := &Store{
		chunks:        make([]Chunk, 0, len(chunks)),
		byTopic:       make(map[string][]int),
		maxChunkBytes: maxChunkBytes,
	}
	for _, c := range chunks {
		if c.Size == 0 {
			c.Size = len(c.Content)
		}
		idx := len(s.chunks)
		s.chunks = append(s.chunks, c)
		s.byTopic[c.Topic] = append(s.byTopic[c.Topic], idx)
	}
	return s
}

// LoadStore reads the reference corpus from a directory. Each markdown file
// maps to one topic (file name without extension, dashes preserved) and is
// split into chunks. A missing directory yields an empty store, not an error:
// the assistant must keep working without augmentation.
func LoadStore(dir string, maxChunkBytes int) *Store {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("[WARN] knowledge corpus not available at %s: %v", dir, err)
		return NewStore(nil, maxChunkBytes)
	}

	var chunks []Chunk
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			log.Printf("[WARN] skipping corpus file %s: %v", e.Name(), err)
			continue
		}
		topic := strings.TrimSuffix(e.Name(), ".md")
		for _, part := range utils.SplitText(string(data), chunkTargetSize, chunkOverlap) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			chunks = append(chunks, Chunk{Topic: topic, Content: part, Size: len(part)})
		}
	}

	store := NewStore(chunks, maxChunkBytes)
	log.Printf("[INFO] knowledge store loaded: %d chunks, %d topics", len(store.chunks), len(store.byTopic))
	return store
}

// ChunksForTopic returns retrieval candidates for a topic in stable load
// order. Chunks over the size ceiling are excluded regardless of topic match.
func (s *Store) ChunksForTopic(topic string) []Chunk {
	var out []Chunk
	for _, idx := range s.byTopic[topic] {
		c := s.chunks[idx]
		if c.Size > s.maxChunkBytes {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Topics returns the set of topics present in the store.
func (s *Store) Topics() []string {
	out := make([]string, 0, len(s.byTopic))
	for t := range s.byTopic {
		out = append(out, t)
	}
	return out
}

// Len reports the total number of loaded chunks.
func (s *Store) Len() int {
	return len(s.chunks)
}
