package review

import (
	"math"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
)

// Summarize turns a flat list of 1-5 star ratings into the summary
// shown by rating widgets. The distribution is always five buckets
// for stars 5,4,3,2,1 in that order, zero-count buckets included.
// An empty input yields a zero summary, never NaN. Values outside
// 1-5 are ignored; the repository guarantees the range on insert.
func Summarize(ratings []int) domain.RatingSummary {
	counts := [6]int{} // index = star value
	sum := 0
	total := 0
	for _, r := range ratings {
		if r < 1 || r > 5 {
			continue
		}
		counts[r]++
		sum += r
		total++
	}

	distribution := make([]domain.DistributionEntry, 0, 5)
	for star := 5; star >= 1; star-- {
		entry := domain.DistributionEntry{Star: star, Count: counts[star]}
		if total > 0 {
			entry.Percentage = float64(counts[star]) / float64(total) * 100
		}
		distribution = append(distribution, entry)
	}

	summary := domain.RatingSummary{
		ReviewCount:  total,
		Distribution: distribution,
	}
	if total > 0 {
		summary.AverageRating = roundHalfUp1(float64(sum) / float64(total))
	}
	return summary
}

// SummarizeGrouped groups rating rows by service and summarizes each
// group. Services with no rows are absent from the result, they do
// not appear with zero stats.
func SummarizeGrouped(rows []domain.RatingRow) map[string]domain.RatingSummary {
	grouped := make(map[string][]int)
	for _, row := range rows {
		grouped[row.ServiceID] = append(grouped[row.ServiceID], row.Rating)
	}

	out := make(map[string]domain.RatingSummary, len(grouped))
	for serviceID, ratings := range grouped {
		out[serviceID] = Summarize(ratings)
	}
	return out
}

// roundHalfUp1 rounds to one decimal with halves going up:
// 4.25 -> 4.3. Encoded explicitly so the rounding rule is a tested
// contract rather than an accident of formatting.
func roundHalfUp1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
