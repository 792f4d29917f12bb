// ABOUTME: Ranking of scored search hits and listing order
// ABOUTME: Search orders by score then id; listings keep snapshot order

package catalog

import (
	"cmp"
	"slices"
)

// Hit pairs a record with the match that selected it. Listings carry a zero
// Match (no score, no spans).
type Hit struct {
	Record *ComponentRecord
	Match
}

// RankHits orders search hits by descending score, breaking ties by
// ascending id. The sort is stable and hits is sorted in place.
func RankHits(hits []Hit) {
	slices.SortStableFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Record.ID, b.Record.ID)
	})
}

// ListingHits wraps records as unscored hits, keeping their order.
func ListingHits(records []*ComponentRecord) []Hit {
	hits := make([]Hit, len(records))
	for i, r := range records {
		hits[i] = Hit{Record: r}
	}
	return hits
}
