package pricefeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supplens/backend/internal/domain"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://feed.example.com", 1000)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://feed.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("k", "https://feed.example.com", 1000)

	client.SetDebug(true)
	assert.True(t, client.debug)
	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
	}
}

func TestFetchPrices_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listings/search", r.URL.Path)
		assert.Equal(t, "4901234567890", r.URL.Query().Get("jan"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))

		response := SearchResponse{
			Jan: "4901234567890",
			Listings: []Listing{
				{
					ListingID: "l1",
					Jan:       "4901234567890",
					Mall:      "rakuten",
					ItemName:  "NMN 250mg ×3",
					Price:     2980,
					ItemURL:   "https://example.com/l1",
					CrawledAt: "2026-05-10T09:00:00Z",
				},
			},
			Total: 1,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 1000)

	records, err := client.FetchPrices(context.Background(), "4901234567890")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "l1", records[0].ID)
	assert.Equal(t, "rakuten", records[0].Source)
	assert.Equal(t, float64(2980), records[0].PriceJPY)
	assert.Equal(t, time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC), records[0].FetchedAt)
}

func TestFetchPrices_EmptyCode(t *testing.T) {
	client := NewClient("k", "https://feed.example.com", 1000)

	_, err := client.FetchPrices(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestFetchPrices_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("k", server.URL, 1000)

	_, err := client.FetchPrices(context.Background(), "490")
	assert.ErrorIs(t, err, domain.ErrNoPriceRecords)
}

func TestFetchPrices_EmptyListings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{Jan: "490"})
	}))
	defer server.Close()

	client := NewClient("k", server.URL, 1000)

	_, err := client.FetchPrices(context.Background(), "490")
	assert.ErrorIs(t, err, domain.ErrNoPriceRecords)
}

func TestFetchPrices_RetriesTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(SearchResponse{
			Jan: "490",
			Listings: []Listing{
				{ListingID: "l1", Mall: "amazon", ItemName: "NMN", Price: 1000, CrawledAt: "2026-05-10T09:00:00Z"},
			},
		})
	}))
	defer server.Close()

	client := NewClient("k", server.URL, 1000000) // large budget so retries are not throttled

	records, err := client.FetchPrices(context.Background(), "490")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Len(t, records, 1)
}

func TestFetchPrices_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("k", server.URL, 1000000)

	_, err := client.FetchPrices(context.Background(), "490")
	assert.ErrorIs(t, err, domain.ErrPriceFeedFailure)
	assert.Equal(t, maxAttempts, attempts)
}

func TestFetchPrices_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient("k", server.URL, 1000)

	_, err := client.FetchPrices(context.Background(), "490")
	assert.Error(t, err)
}
