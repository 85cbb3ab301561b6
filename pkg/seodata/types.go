package seodata

// KeywordCandidate is one row from the keyword-research provider.
type KeywordCandidate struct {
	Keyword      string  `json:"keyword"`
	SearchVolume int     `json:"search_volume"`
	Competition  float64 `json:"competition"`
	Difficulty   int     `json:"difficulty"`
	CPC          float64 `json:"cpc"`
	Intent       string  `json:"intent"`
	Trend        string  `json:"trend"`
}

// RankResult is the rank-check provider response. Position is nil when the
// domain does not rank in the checked depth.
type RankResult struct {
	Keyword  string `json:"keyword"`
	Domain   string `json:"domain"`
	Position *int   `json:"position"`
	PageURL  string `json:"page_url"`
}

// SiteAudit is the site-analysis provider response.
type SiteAudit struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	Headings        []string `json:"headings"`
	Issues          []string `json:"issues"`
}

// BacklinkSample is one example link in a backlink overview.
type BacklinkSample struct {
	SourceURL  string `json:"source_url"`
	TargetURL  string `json:"target_url"`
	AnchorText string `json:"anchor_text"`
	DoFollow   bool   `json:"do_follow"`
}

// BacklinkOverview is the backlink provider response for a domain.
type BacklinkOverview struct {
	Domain           string           `json:"domain"`
	TotalBacklinks   int              `json:"total_backlinks"`
	ReferringDomains int              `json:"referring_domains"`
	DomainAuthority  int              `json:"domain_authority"`
	Samples          []BacklinkSample `json:"samples"`
}
