package domain

import "time"

// PriceRecord is one listing observed at one retail source. Records sharing a
// CanonicalCode describe the same physical item.
type PriceRecord struct {
	ID            string    `json:"id"`
	CanonicalCode string    `json:"canonicalCode,omitempty"`
	Source        string    `json:"source"` // retailer tag
	Title         string    `json:"title"`
	PriceJPY      float64   `json:"priceJpy"`
	URL           string    `json:"url,omitempty"`
	FetchedAt     time.Time `json:"fetchedAt"`

	// Derived by the price service.
	Quantity     int  `json:"quantity"`     // units per listing, parsed from Title
	UnitPriceJPY int  `json:"unitPriceJpy"` // round(PriceJPY / Quantity)
	IsLowest     bool `json:"isLowest"`
}

// PriceComparison is the canonical, deduplicated view of all records for one
// physical item. Every comparison consumer (tier ranks, badges) reads this
// view, never the raw unmerged records.
type PriceComparison struct {
	CanonicalCode string        `json:"canonicalCode"`
	Records       []PriceRecord `json:"records"` // sorted by price ascending

	// DroppedDuplicates counts same-source records discarded as data-entry
	// artifacts. NeedsReview flags a same-source group whose duplicates
	// disagreed on price; the surviving record is kept but the group needs a
	// manual pass.
	DroppedDuplicates int    `json:"droppedDuplicates"`
	NeedsReview       bool   `json:"needsReview"`
	ReviewReason      string `json:"reviewReason,omitempty"`
}

// Lowest returns the cheapest record in the comparison, or nil when empty.
func (c *PriceComparison) Lowest() *PriceRecord {
	if len(c.Records) == 0 {
		return nil
	}
	return &c.Records[0]
}
