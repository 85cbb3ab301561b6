package seodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// KeywordResearcher is the contract the orchestration core depends on.
type KeywordResearcher interface {
	ResearchKeywords(ctx context.Context, query, location string, limit int) ([]KeywordCandidate, error)
}

// KeywordClient talks to the keyword-research provider.
type KeywordClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ KeywordResearcher = &KeywordClient{}

func NewKeywordClient(baseURL, apiKey string) *KeywordClient {
	return &KeywordClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *KeywordClient) ResearchKeywords(ctx context.Context, query, location string, limit int) ([]KeywordCandidate, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("limit", strconv.Itoa(limit))
	if location != "" {
		params.Add("location", location)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/keywords/suggestions?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("keyword provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keyword provider http %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Keywords []KeywordCandidate `json:"keywords"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode keyword response: %w", err)
	}

	return result.Keywords, nil
}
