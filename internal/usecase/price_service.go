package usecase

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/supplens/backend/internal/domain"
)

// Bundle-quantity patterns compiled once. Listing titles mix Japanese and
// ASCII bundle markers: "×3", "x3", "3個セット", "3-pack", "pack of 3".
var (
	reCrossQty  = regexp.MustCompile(`[×xX]\s*(\d+)`)
	reSetQty    = regexp.MustCompile(`(\d+)\s*(?:個セット|本セット|袋セット|個入り?セット)`)
	rePackQty   = regexp.MustCompile(`(?i)(\d+)[-\s]?(?:pack|packs|pcs?)\b`)
	rePackOfQty = regexp.MustCompile(`(?i)pack\s*of\s*(\d+)`)
)

// PriceService merges price records for the same physical product across
// retail sources into a canonical, deduplicated comparison view.
type PriceService struct{}

// NewPriceService creates a new price service
func NewPriceService() *PriceService {
	return &PriceService{}
}

// Compare groups records by canonical code and deduplicates each group.
// Records without a canonical code cannot be cross-matched and form
// singleton groups keyed by record ID. Groups come back sorted by canonical
// code for deterministic output.
func (s *PriceService) Compare(records []domain.PriceRecord) []domain.PriceComparison {
	groups := make(map[string][]domain.PriceRecord)
	var keys []string
	for _, record := range records {
		key := record.CanonicalCode
		if key == "" {
			key = "uncoded:" + record.ID
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], record)
	}
	sort.Strings(keys)

	comparisons := make([]domain.PriceComparison, 0, len(groups))
	for _, key := range keys {
		comparisons = append(comparisons, s.compareGroup(groups[key]))
	}
	return comparisons
}

// compareGroup deduplicates one canonical-code group. A group whose records
// all share one retailer is a same-listing data-entry artifact: only the
// earliest-recorded entry survives. A group spanning retailers is a
// legitimate comparison set, sorted by price ascending with the cheapest
// record flagged.
func (s *PriceService) compareGroup(records []domain.PriceRecord) domain.PriceComparison {
	comparison := domain.PriceComparison{
		CanonicalCode: records[0].CanonicalCode,
	}

	if singleSource(records) {
		survivor := earliest(records)
		comparison.DroppedDuplicates = len(records) - 1
		for _, record := range records {
			if record.PriceJPY != survivor.PriceJPY {
				comparison.NeedsReview = true
				comparison.ReviewReason = fmt.Sprintf(
					"conflicting prices from %s: kept %.0f, saw %.0f", survivor.Source, survivor.PriceJPY, record.PriceJPY)
				break
			}
		}
		comparison.Records = []domain.PriceRecord{derive(survivor)}
		comparison.Records[0].IsLowest = true
		return comparison
	}

	sorted := make([]domain.PriceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PriceJPY != sorted[j].PriceJPY {
			return sorted[i].PriceJPY < sorted[j].PriceJPY
		}
		return sorted[i].FetchedAt.Before(sorted[j].FetchedAt)
	})

	for i := range sorted {
		sorted[i] = derive(sorted[i])
		sorted[i].IsLowest = i == 0
	}
	comparison.Records = sorted
	return comparison
}

// LowestPrice returns the minimum price across all comparison groups that
// contain the given canonical code, or (0, false) when no group matches.
func (s *PriceService) LowestPrice(comparisons []domain.PriceComparison, canonicalCode string) (float64, bool) {
	for i := range comparisons {
		if comparisons[i].CanonicalCode != canonicalCode {
			continue
		}
		if lowest := comparisons[i].Lowest(); lowest != nil {
			return lowest.PriceJPY, true
		}
	}
	return 0, false
}

// ParseQuantity extracts the bundle quantity from a listing title,
// defaulting to 1 when no bundle marker is present.
func ParseQuantity(title string) int {
	for _, re := range []*regexp.Regexp{reCrossQty, reSetQty, rePackOfQty, rePackQty} {
		m := re.FindStringSubmatch(title)
		if len(m) < 2 {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			continue
		}
		return qty
	}
	return 1
}

// derive fills the per-record numeric derivations.
func derive(record domain.PriceRecord) domain.PriceRecord {
	record.Quantity = ParseQuantity(record.Title)
	record.UnitPriceJPY = int(math.Round(record.PriceJPY / float64(record.Quantity)))
	record.IsLowest = false
	return record
}

func singleSource(records []domain.PriceRecord) bool {
	for _, record := range records[1:] {
		if record.Source != records[0].Source {
			return false
		}
	}
	return true
}

func earliest(records []domain.PriceRecord) domain.PriceRecord {
	best := records[0]
	for _, record := range records[1:] {
		if record.FetchedAt.Before(best.FetchedAt) {
			best = record
		}
	}
	return best
}
