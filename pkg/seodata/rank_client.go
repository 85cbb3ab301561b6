package seodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RankChecker is the contract the orchestration core depends on.
type RankChecker interface {
	CheckRank(ctx context.Context, keyword, domain string) (*RankResult, error)
}

// RankClient talks to the rank-check provider.
type RankClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ RankChecker = &RankClient{}

func NewRankClient(baseURL, apiKey string) *RankClient {
	return &RankClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *RankClient) CheckRank(ctx context.Context, keyword, domain string) (*RankResult, error) {
	params := url.Values{}
	params.Add("keyword", keyword)
	params.Add("domain", domain)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/serp/position?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rank provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rank provider http %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Position *int   `json:"position"`
		PageURL  string `json:"page_url"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode rank response: %w", err)
	}

	return &RankResult{
		Keyword:  keyword,
		Domain:   domain,
		Position: result.Position,
		PageURL:  result.PageURL,
	}, nil
}
