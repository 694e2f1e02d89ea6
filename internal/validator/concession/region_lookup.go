package concession

import (
	"strings"

	"dataquality/internal/domain"
)

// RegionLookup is an in-memory view of the region master list.
// It is immutable after construction and safe for concurrent access.
type RegionLookup struct {
	known map[string]domain.Region
}

// NewRegionLookup indexes regions by normalized code and by normalized name.
func NewRegionLookup(regions []domain.Region) *RegionLookup {
	m := make(map[string]domain.Region, len(regions)*2)
	for idx := range regions {
		r := regions[idx]
		if k := normalizeRegion(r.Code); k != "" {
			m[k] = r
		}
		if k := normalizeRegion(r.Name); k != "" {
			m[k] = r
		}
	}
	return &RegionLookup{known: m}
}

// Len returns the number of index entries.
func (l *RegionLookup) Len() int { return len(l.known) }

// Find returns the master entry matching value by code or name.
func (l *RegionLookup) Find(value string) (domain.Region, bool) {
	r, ok := l.known[normalizeRegion(value)]
	return r, ok
}

// normalizeRegion folds case and collapses inner whitespace.
func normalizeRegion(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
