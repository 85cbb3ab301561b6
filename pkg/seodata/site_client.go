package seodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"
)

// SiteAnalyzer is the contract the orchestration core depends on.
type SiteAnalyzer interface {
	AnalyzeSite(ctx context.Context, pageURL string) (*SiteAudit, error)
}

// SiteClient talks to the on-page analysis provider.
type SiteClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ SiteAnalyzer = &SiteClient{}

func NewSiteClient(baseURL, apiKey string) *SiteClient {
	return &SiteClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			// Page fetch plus parse on the provider side can be slow.
			Timeout: 60 * time.Second,
		},
	}
}

func (c *SiteClient) AnalyzeSite(ctx context.Context, pageURL string) (*SiteAudit, error) {
	if _, err := neturl.ParseRequestURI(pageURL); err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", pageURL, err)
	}

	params := neturl.Values{}
	params.Add("url", pageURL)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/onpage/audit?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("site provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("site provider http %d: %s", resp.StatusCode, string(body))
	}

	var audit SiteAudit
	if err := json.Unmarshal(body, &audit); err != nil {
		return nil, fmt.Errorf("decode site response: %w", err)
	}
	audit.URL = pageURL

	return &audit, nil
}
