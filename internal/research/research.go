package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"coldreach/internal/config"
	"coldreach/internal/prospect"
)

// userAgent is sent on every research request.
const userAgent = "Mozilla/5.0 (compatible; EmailResearch/1.0)"

const (
	longTextRunes  = 600
	aboutRuneCap   = 500
	aboutRuneMin   = 100
	aboutSentences = 3
)

// Result is what a single research pass over one URL produces.
type Result struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	About       string    `json:"about"`
	TechHints   []string  `json:"tech_hints"`
	FetchedAt   time.Time `json:"fetched_at"`
	FromCache   bool      `json:"from_cache,omitempty"`
}

// Researcher fetches prospect websites and extracts whatever descriptive
// signal it can find. All extraction is best-effort.
type Researcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	cache     *Cache
	cacheTTL  time.Duration
}

// NewResearcher builds a researcher from config. cache may be nil.
func NewResearcher(cfg *config.Config, cache *Cache) *Researcher {
	return &Researcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.Research.TimeoutSeconds) * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  cfg.Research.MaxBodyBytes,
		cache:     cache,
		cacheTTL:  time.Duration(cfg.Research.CacheTTLHours) * time.Hour,
	}
}

// Research fetches and extracts one URL, consulting the cache when one is
// configured. Errors are soft for callers: a failed pass never blocks email
// generation.
func (r *Researcher) Research(ctx context.Context, urlStr string) (*Result, error) {
	if r.cache != nil {
		if res, ok := r.cache.Get(ctx, urlStr); ok {
			res.FromCache = true
			return res, nil
		}
	}

	res, err := r.fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Put(ctx, urlStr, res, r.cacheTTL)
	}
	return res, nil
}

// Enrich copies research findings onto the prospect. Empty findings leave the
// existing values alone.
func Enrich(p *prospect.Prospect, res *Result) {
	if res == nil {
		return
	}
	if res.Description != "" {
		p.CompanyDescription = res.Description
	} else if res.About != "" {
		p.CompanyDescription = res.About
	}
	if len(res.TechHints) > 0 {
		p.TechStack = strings.Join(res.TechHints, ", ")
	}
}
