package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/supplens/backend/internal/domain"
	"golang.org/x/time/rate"
)

// maxAttempts bounds retries against transient feed failures.
const maxAttempts = 3

// Listing is one raw listing as the aggregation feed returns it.
type Listing struct {
	ListingID string  `json:"listingId"`
	Jan       string  `json:"jan"`
	Mall      string  `json:"mall"`
	ItemName  string  `json:"itemName"`
	Price     float64 `json:"price"`
	ItemURL   string  `json:"itemUrl"`
	CrawledAt string  `json:"crawledAt"` // RFC 3339
}

// SearchResponse is the feed's response envelope for a JAN lookup.
type SearchResponse struct {
	Jan      string    `json:"jan"`
	Listings []Listing `json:"listings"`
	Total    int       `json:"total"`
}

// Client talks to the external price aggregation feed. The feed allows a
// fixed request budget per hour, enforced locally with a token bucket so a
// catalog refresh cannot burn the budget in one burst.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new price feed client. requestsPerHour sizes the local
// rate limiter to the feed's documented budget.
func NewClient(apiKey, baseURL string, requestsPerHour int) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	limiter := rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600.0), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchPrices looks up all listings for a canonical code (JAN) and maps them
// to price records. Transient failures are retried with exponential backoff;
// a code the feed does not know yields ErrNoPriceRecords.
func (c *Client) FetchPrices(ctx context.Context, canonicalCode string) ([]domain.PriceRecord, error) {
	if canonicalCode == "" {
		return nil, domain.ErrInvalidRequest
	}

	endpoint := fmt.Sprintf("%s/v1/listings/search", c.baseURL)
	params := url.Values{}
	params.Add("jan", canonicalCode)
	params.Add("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[PRICEFEED] request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			sleep(ctx, exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrNoPriceRecords
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[PRICEFEED] status %d (attempt %d): %s", resp.StatusCode, attempt, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrPriceFeedFailure, resp.StatusCode)
			sleep(ctx, exponentialBackoff(attempt))
			continue
		}

		var search SearchResponse
		if err := json.Unmarshal(body, &search); err != nil {
			return nil, fmt.Errorf("decode feed response: %w", err)
		}
		if len(search.Listings) == 0 {
			return nil, domain.ErrNoPriceRecords
		}

		if c.debug {
			log.Printf("[PRICEFEED] %d listings for jan %s", len(search.Listings), canonicalCode)
		}
		return MapListings(canonicalCode, search.Listings), nil
	}

	return nil, lastErr
}

// doRequest executes a GET with feed headers and sentinel-wrapped errors.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Supplens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPriceFeedFailure, err)
	}
	return resp, nil
}

// exponentialBackoff doubles the wait per attempt: 500ms, 1s, 2s.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
