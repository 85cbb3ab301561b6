package seodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// BacklinkReader is the contract the orchestration core depends on.
type BacklinkReader interface {
	BacklinkOverview(ctx context.Context, domain string) (*BacklinkOverview, error)
}

// BacklinkClient talks to the backlink index provider. Overviews move slowly,
// so responses are cached in memory for a while.
type BacklinkClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   sync.Map
}

// Cache Item Wrapper
type cachedOverview struct {
	data      *BacklinkOverview
	expiresAt time.Time
}

var _ BacklinkReader = &BacklinkClient{}

func NewBacklinkClient(baseURL, apiKey string) *BacklinkClient {
	return &BacklinkClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *BacklinkClient) getFromCache(domain string) (*BacklinkOverview, bool) {
	val, ok := c.cache.Load(domain)
	if !ok {
		return nil, false
	}
	item := val.(cachedOverview)
	if time.Now().After(item.expiresAt) {
		c.cache.Delete(domain)
		return nil, false
	}
	return item.data, true
}

func (c *BacklinkClient) setCache(domain string, data *BacklinkOverview, duration time.Duration) {
	c.cache.Store(domain, cachedOverview{
		data:      data,
		expiresAt: time.Now().Add(duration),
	})
}

func (c *BacklinkClient) BacklinkOverview(ctx context.Context, domain string) (*BacklinkOverview, error) {
	if cached, ok := c.getFromCache(domain); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Add("domain", domain)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/backlinks/overview?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backlink provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backlink provider http %d: %s", resp.StatusCode, string(body))
	}

	var overview BacklinkOverview
	if err := json.Unmarshal(body, &overview); err != nil {
		return nil, fmt.Errorf("decode backlink response: %w", err)
	}
	overview.Domain = domain

	c.setCache(domain, &overview, 6*time.Hour)

	return &overview, nil
}
