// Package osint talks to the external probe service that checks a
// username across the selected sites. Statuses coming back from the
// service are loose strings; they are normalised into domain verdicts
// here, at the boundary, so the core never sees raw provider text.
package osint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
	"github.com/prowl-osint/prowl-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchProvider = (*Client)(nil)

const (
	// requestRate throttles calls to the probe service.
	requestRate = 1.0

	// maxResponseBytes bounds the decoded response body.
	maxResponseBytes = 32 << 20
)

// Client is an HTTP implementation of driven.SearchProvider.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a probe-service client for the given base URL.
// The HTTP client carries no timeout of its own: per-search deadlines
// arrive through the request context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(requestRate), 1),
	}
}

// searchPayload is the wire request.
type searchPayload struct {
	Username       string   `json:"username"`
	Sites          []string `json:"sites"`
	Timeout        int      `json:"timeout"`
	MaxConnections int      `json:"max_connections"`
	Retries        int      `json:"retries"`
	IDType         string   `json:"id_type"`
	Parsing        bool     `json:"parsing"`
	CookiesFile    string   `json:"cookies_file,omitempty"`
}

// siteResult is one wire result. Status is a pointer so a site with no
// verdict at all is distinguishable from an empty one.
type siteResult struct {
	Site    string   `json:"site"`
	Status  *string  `json:"status"`
	URL     string   `json:"url"`
	Similar bool     `json:"similar"`
	Tags    []string `json:"tags"`
}

type searchResponse struct {
	Results []siteResult `json:"results"`
}

// Search runs one probe across the requested sites. The returned slice
// preserves the service's response order.
func (c *Client) Search(ctx context.Context, req driven.ProbeRequest) ([]domain.RawSiteResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	names := make([]string, len(req.Sites))
	for i, s := range req.Sites {
		names[i] = s.Name
	}

	payload := searchPayload{
		Username:       req.Username,
		Sites:          names,
		Timeout:        req.TimeoutSeconds,
		MaxConnections: req.MaxConnections,
		Retries:        req.Retries,
		IDType:         req.IDType,
		Parsing:        req.ParsingEnabled,
		CookiesFile:    req.CookiesFile,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding probe request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building probe request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("probe service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("probe service returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var decoded searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding probe response: %w", err)
	}

	results := make([]domain.RawSiteResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		raw := domain.RawSiteResult{
			SiteName: r.Site,
			URL:      r.URL,
			Similar:  r.Similar,
			Tags:     r.Tags,
		}
		if r.Status != nil {
			raw.Status = domain.ParseSiteStatus(*r.Status)
			raw.HasStatus = true
		}
		results = append(results, raw)
	}

	logger.Debug("probe of %q finished: %d sites in %s", req.Username, len(results), time.Since(started).Round(time.Millisecond))
	return results, nil
}
