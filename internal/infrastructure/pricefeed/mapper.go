package pricefeed

import (
	"time"

	"github.com/supplens/backend/internal/domain"
)

// MapListings converts raw feed listings to price records. Listings without
// a usable price are dropped; a listing whose own JAN is empty inherits the
// code that was queried.
func MapListings(canonicalCode string, listings []Listing) []domain.PriceRecord {
	records := make([]domain.PriceRecord, 0, len(listings))
	for _, listing := range listings {
		if listing.Price <= 0 {
			continue
		}
		code := listing.Jan
		if code == "" {
			code = canonicalCode
		}
		records = append(records, domain.PriceRecord{
			ID:            listing.ListingID,
			CanonicalCode: code,
			Source:        listing.Mall,
			Title:         listing.ItemName,
			PriceJPY:      listing.Price,
			URL:           listing.ItemURL,
			FetchedAt:     parseCrawledAt(listing.CrawledAt),
		})
	}
	return records
}

// parseCrawledAt parses the feed's RFC 3339 timestamp, falling back to now
// so a malformed timestamp never drops a price.
func parseCrawledAt(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Now().UTC()
}
