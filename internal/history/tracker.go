package history

import (
	"sort"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

const (
	// RecentlyViewedCap bounds the list shown in the "recently viewed" strip.
	RecentlyViewedCap = 8
	// ViewHistoryCap bounds the longer history used for recommendation scoring.
	ViewHistoryCap = 50
	// RecommendLimit is how many ranked items Recommend returns.
	RecommendLimit = 6
)

// RecordView returns the list with the entry moved to the front.
// Any existing entry with the same service id is removed first, so
// the list stays deduplicated with the most recent occurrence
// winning; the result is truncated to max. Pure: the input slice is
// not modified.
func RecordView(list []domain.ViewEntry, entry domain.ViewEntry, max int) []domain.ViewEntry {
	out := make([]domain.ViewEntry, 0, len(list)+1)
	out = append(out, entry)
	for _, existing := range list {
		if existing.ServiceID == entry.ServiceID {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// Recommend ranks catalog items for a profile. Items already in the
// history are excluded. Remaining items are ordered by descending
// frequency of their platform in the history, ties broken by
// descending rating; favorite categories count as one extra
// occurrence so a favored platform outranks an otherwise-equal one.
// Deterministic: equal items keep their catalog order.
func Recommend(all []domain.CatalogService, viewed []domain.ViewEntry, favorites []string) []domain.CatalogService {
	seen := make(map[string]bool, len(viewed))
	frequency := make(map[string]int)
	for _, entry := range viewed {
		seen[entry.ServiceID] = true
		frequency[entry.Platform]++
	}
	for _, category := range favorites {
		frequency[category]++
	}

	candidates := make([]domain.CatalogService, 0, len(all))
	for _, item := range all {
		if seen[item.ID] {
			continue
		}
		candidates = append(candidates, item)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		fi, fj := frequency[candidates[i].Platform], frequency[candidates[j].Platform]
		if fi != fj {
			return fi > fj
		}
		return candidates[i].Rating > candidates[j].Rating
	})

	if len(candidates) > RecommendLimit {
		candidates = candidates[:RecommendLimit]
	}
	return candidates
}

// ToggleFavorite adds the category when absent and removes it when
// present. The result never holds duplicates.
func ToggleFavorite(categories []string, category string) []string {
	out := make([]string, 0, len(categories)+1)
	removed := false
	for _, existing := range categories {
		if existing == category {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	if !removed {
		out = append(out, category)
	}
	return out
}
