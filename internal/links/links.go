// Package links checks the liveness of URLs referenced by a risk register
package links

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethanolivertroy/riskmatrix-tui/internal/model"
)

const (
	// minRequestInterval limits checks to 10/sec max so referenced hosts
	// are not hammered
	minRequestInterval = 100 * time.Millisecond

	defaultTimeout = 10 * time.Second

	userAgent = "riskmatrix-tui/link-checker"
)

// urlPattern matches http(s) URLs embedded in free text
var urlPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// Status is the outcome of checking one URL
type Status struct {
	URL        string
	OK         bool
	StatusCode int // 0 when no request completed
	Err        error
}

// Checker performs rate-limited liveness checks with a per-URL result
// cache, so a URL referenced by many records is only requested once
type Checker struct {
	httpClient  *http.Client
	mu          sync.Mutex
	lastRequest time.Time

	cacheMu sync.RWMutex
	cache   map[string]Status
}

// NewChecker creates a checker with the given request timeout
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return NewCheckerWithHTTPClient(&http.Client{Timeout: timeout})
}

// NewCheckerWithHTTPClient creates a checker with a custom HTTP client
func NewCheckerWithHTTPClient(httpClient *http.Client) *Checker {
	return &Checker{
		httpClient: httpClient,
		cache:      make(map[string]Status),
	}
}

// ExtractURLs returns the unique http(s) URLs found in the records'
// text fields, sorted so check order is reproducible
func ExtractURLs(records []model.RiskRecord) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, field := range []string{rec.Asset, rec.Threat, rec.Vulnerability, rec.Recommendation} {
			for _, raw := range urlPattern.FindAllString(field, -1) {
				url := strings.TrimRight(raw, ".,;:)")
				if url != "" {
					seen[url] = true
				}
			}
		}
	}

	urls := make([]string, 0, len(seen))
	for url := range seen {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Check reports the liveness of a single URL. Results are cached for
// the lifetime of the checker.
func (c *Checker) Check(url string) Status {
	c.cacheMu.RLock()
	if status, ok := c.cache[url]; ok {
		c.cacheMu.RUnlock()
		return status
	}
	c.cacheMu.RUnlock()

	status := c.probe(url)

	c.cacheMu.Lock()
	c.cache[url] = status
	c.cacheMu.Unlock()

	return status
}

// CheckAll checks every URL, returning statuses in input order
func (c *Checker) CheckAll(urls []string) []Status {
	statuses := make([]Status, 0, len(urls))
	for _, url := range urls {
		statuses = append(statuses, c.Check(url))
	}
	return statuses
}

// DeadCount returns how many of the statuses are failures
func DeadCount(statuses []Status) int {
	dead := 0
	for _, status := range statuses {
		if !status.OK {
			dead++
		}
	}
	return dead
}

// probe tries HEAD first and falls back to GET, since some servers
// reject HEAD outright
func (c *Checker) probe(url string) Status {
	resp, err := c.rateLimitedDo(http.MethodHead, url)
	if err == nil {
		resp.Body.Close()
		if resp.StatusCode < 400 {
			return Status{URL: url, OK: true, StatusCode: resp.StatusCode}
		}
	}

	resp, err = c.rateLimitedDo(http.MethodGet, url)
	if err != nil {
		return Status{URL: url, Err: err}
	}
	defer resp.Body.Close()

	return Status{
		URL:        url,
		OK:         resp.StatusCode < 400,
		StatusCode: resp.StatusCode,
	}
}

// rateLimitedDo performs a rate-limited HTTP request
func (c *Checker) rateLimitedDo(method, url string) (*http.Response, error) {
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < minRequestInterval {
		time.Sleep(minRequestInterval - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	return c.httpClient.Do(req)
}
