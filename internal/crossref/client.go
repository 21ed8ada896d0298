// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref fetches bibliographic works from the Crossref API through
// the response cache.
// Implements: prd001-ingestion (upstream client, fetch accounting);
//
//	docs/ARCHITECTURE § Upstream Client.
package crossref

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/joels-spie/photonics-trends-app/internal/cache"
	"github.com/joels-spie/photonics-trends-app/internal/httputil"
	"github.com/joels-spie/photonics-trends-app/internal/query"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// worksBase is the Crossref works endpoint. Declared as a var so tests can
// substitute an httptest server.
var worksBase = "https://api.crossref.org/works"

// Stats is the per-request accumulator behind result meta. One Stats value
// is threaded through a single fetch-then-analyze pipeline, never shared
// across requests, which keeps the engine safe under concurrent callers.
type Stats struct {
	CachedResponses int
	LiveResponses   int
	LastAPICallAt   time.Time
	Warnings        []string
}

// Warn appends a degradation note in occurrence order.
func (s *Stats) Warn(format string, args ...any) {
	s.Warnings = append(s.Warnings, fmt.Sprintf(format, args...))
}

// FetchError reports an upstream failure for a single page: network error,
// non-success status, or malformed payload. The orchestrator treats it as
// retryable and degrades to partial results when it persists.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("crossref fetch failed with HTTP %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("crossref fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is (or wraps) a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// Client is the cache-through Crossref client. Cache hits cost nothing; live
// calls go through a rate limiter to respect upstream usage policy.
type Client struct {
	httpClient *http.Client
	store      *cache.Store
	cfg        types.CrossrefConfig
	limiter    *rate.Limiter
}

// NewClient builds a client over the given response cache.
func NewClient(store *cache.Store, cfg types.CrossrefConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	interval := cfg.LiveCallInterval
	if interval <= 0 {
		interval = time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		cfg:        cfg,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// GetPage returns the page for spec, serving from cache unless refresh is
// set or no fresh entry exists. The bool result reports whether the page
// came from cache. At most one live call is made per distinct fingerprint;
// a cache read failure degrades to a live fetch with a warning.
func (c *Client) GetPage(ctx context.Context, spec query.Spec, refresh bool, stats *Stats) (cache.Entry, bool, error) {
	key := spec.Fingerprint()

	if !refresh {
		entry, ok, err := c.store.Get(key)
		if err != nil {
			stats.Warn("cache read failed (%v); falling through to a live fetch", err)
		}
		if ok {
			stats.CachedResponses++
			return entry, true, nil
		}
	}

	entry, err := c.fetchPage(ctx, spec, stats)
	if err != nil {
		return cache.Entry{}, false, err
	}

	if err := c.store.Put(key, entry); err != nil {
		stats.Warn("cache write failed (%v); page served but not stored", err)
	}
	return entry, false, nil
}

func (c *Client) fetchPage(ctx context.Context, spec query.Spec, stats *Stats) (cache.Entry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return cache.Entry{}, &FetchError{Err: err}
	}

	params := url.Values{
		"query":  {spec.QueryText},
		"filter": {FilterString(spec)},
		"rows":   {strconv.Itoa(spec.Rows)},
		"cursor": {spec.Cursor},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, worksBase+"?"+params.Encode(), nil)
	if err != nil {
		return cache.Entry{}, &FetchError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries, c.cfg.BackoffBase)
	stats.LastAPICallAt = time.Now().UTC()
	if err != nil {
		return cache.Entry{}, &FetchError{Err: fmt.Errorf("crossref request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return cache.Entry{}, &FetchError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("crossref returned HTTP %d", resp.StatusCode),
		}
	}

	var wr worksResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return cache.Entry{}, &FetchError{Err: fmt.Errorf("parsing crossref response: %w", err)}
	}

	stats.LiveResponses++
	return cache.Entry{
		Records:    normalizeItems(wr.Message.Items),
		NextCursor: wr.Message.NextCursor,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// FilterString builds the comma-joined Crossref filter expression. Crossref
// ANDs comma-separated filters, so only the first member of each set is sent
// upstream; the full sets are enforced by the local post-filter.
func FilterString(spec query.Spec) string {
	filters := []string{
		"from-pub-date:" + spec.FromDate.Format("2006-01-02"),
		"until-pub-date:" + spec.UntilDate.Format("2006-01-02"),
	}
	if len(spec.DocTypes) > 0 {
		filters = append(filters, "type:"+spec.DocTypes[0])
	}
	if len(spec.Prefixes) > 0 {
		filters = append(filters, "prefix:"+spec.Prefixes[0])
	}
	if len(spec.ContainerTitles) > 0 {
		filters = append(filters, "container-title:"+spec.ContainerTitles[0])
	}
	return strings.Join(filters, ",")
}
