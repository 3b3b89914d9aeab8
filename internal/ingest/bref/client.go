package bref

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// BaseURL for Basketball-Reference pages
	BaseURL = "https://www.basketball-reference.com"

	// UserAgent for requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to stay under Basketball-Reference's rate limit
	// (roughly 20 requests per minute before they block)
	MinRequestInterval = 3 * time.Second

	pageCacheTTL = 24 * time.Hour
)

// PageCache caches fetched pages between runs. Finished-game pages never
// change, so a cache hit skips the scrape entirely.
type PageCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Client fetches Basketball-Reference pages with rate limiting, an
// optional page cache, and a headless-browser fallback for requests the
// plain HTTP client gets blocked on.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      PageCache

	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration
	browser     *Browser
}

// NewClient creates a new Basketball-Reference client. cache may be nil.
func NewClient(cache PageCache) *Client {
	return NewClientWithBaseURL(BaseURL, cache)
}

// NewClientWithBaseURL creates a client against a custom base URL (tests).
func NewClientWithBaseURL(baseURL string, cache PageCache) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
		interval:   MinRequestInterval,
	}
}

// Close releases the browser if one was started.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browser != nil {
		c.browser.Close()
		c.browser = nil
	}
}

// FetchPage fetches one page path (e.g. "/boxscores/pbp/202105220LAL.html")
// and parses it into a goquery document.
func (c *Client) FetchPage(ctx context.Context, path string) (*goquery.Document, error) {
	cacheKey := "bref:page:" + path

	if c.cache != nil {
		if html, err := c.cache.Get(ctx, cacheKey); err == nil && html != "" {
			return goquery.NewDocumentFromReader(strings.NewReader(html))
		}
	}

	html, err := c.fetchWithRateLimit(ctx, c.baseURL+path)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, html, pageCacheTTL); err != nil {
			log.Printf("[bref] Warning: caching %s failed: %v", path, err)
		}
	}

	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// fetchWithRateLimit fetches content with automatic rate limiting.
func (c *Client) fetchWithRateLimit(ctx context.Context, url string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			waitTime := c.interval - elapsed
			log.Printf("[bref] Rate limiting: waiting %v before next request", waitTime)
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	html, err := c.fetch(ctx, url)
	c.lastRequest = time.Now()

	return html, err
}

// fetch performs a plain HTTP GET, falling back to the headless browser
// when Basketball-Reference rejects the request outright.
func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", url, err)
		}
		return string(body), nil

	case http.StatusForbidden, http.StatusTooManyRequests:
		log.Printf("[bref] HTTP %d for %s, retrying via headless browser", resp.StatusCode, url)
		return c.fetchViaBrowser(ctx, url)

	default:
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}
}

func (c *Client) fetchViaBrowser(ctx context.Context, url string) (string, error) {
	if c.browser == nil {
		browser, err := NewBrowser()
		if err != nil {
			return "", fmt.Errorf("starting browser: %w", err)
		}
		c.browser = browser
	}
	return c.browser.Fetch(ctx, url)
}
