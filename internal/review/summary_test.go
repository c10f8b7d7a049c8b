package review

import (
	"testing"

	"github.com/atharvmishra2056/new-kuzzboost-sub001/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)

	assert.Equal(t, 0.0, got.AverageRating)
	assert.Equal(t, 0, got.ReviewCount)
	require.Len(t, got.Distribution, 5)
	for i, entry := range got.Distribution {
		assert.Equal(t, 5-i, entry.Star)
		assert.Equal(t, 0, entry.Count)
		assert.Equal(t, 0.0, entry.Percentage)
	}
}

func TestSummarize_RoundsHalfUp(t *testing.T) {
	// (5+5+4+3)/4 = 4.25, half-up to one decimal -> 4.3
	got := Summarize([]int{5, 5, 4, 3})

	assert.Equal(t, 4.3, got.AverageRating)
	assert.Equal(t, 4, got.ReviewCount)

	wantCounts := map[int]int{5: 2, 4: 1, 3: 1, 2: 0, 1: 0}
	wantPercent := map[int]float64{5: 50, 4: 25, 3: 25, 2: 0, 1: 0}
	for _, entry := range got.Distribution {
		assert.Equal(t, wantCounts[entry.Star], entry.Count, "star %d", entry.Star)
		assert.Equal(t, wantPercent[entry.Star], entry.Percentage, "star %d", entry.Star)
	}
}

func TestSummarize_CountsSumToReviewCount(t *testing.T) {
	inputs := [][]int{
		{1},
		{5, 5, 5},
		{1, 2, 3, 4, 5},
		{2, 2, 4, 4, 4, 3, 1, 5},
	}
	for _, ratings := range inputs {
		got := Summarize(ratings)
		assert.Equal(t, len(ratings), got.ReviewCount)

		countSum := 0
		percentSum := 0.0
		for _, entry := range got.Distribution {
			countSum += entry.Count
			percentSum += entry.Percentage
		}
		assert.Equal(t, len(ratings), countSum)
		assert.InDelta(t, 100.0, percentSum, 1e-9)
	}
}

func TestSummarize_DistributionOrderIsFixed(t *testing.T) {
	got := Summarize([]int{3})
	stars := make([]int, 0, 5)
	for _, entry := range got.Distribution {
		stars = append(stars, entry.Star)
	}
	assert.Equal(t, []int{5, 4, 3, 2, 1}, stars)
}

func TestSummarizeGrouped_OmitsServicesWithoutRows(t *testing.T) {
	rows := []domain.RatingRow{
		{ServiceID: "ig-followers", Rating: 5},
		{ServiceID: "ig-followers", Rating: 4},
		{ServiceID: "yt-views", Rating: 3},
	}

	got := SummarizeGrouped(rows)

	require.Len(t, got, 2)
	assert.Equal(t, 2, got["ig-followers"].ReviewCount)
	assert.Equal(t, 4.5, got["ig-followers"].AverageRating)
	assert.Equal(t, 3.0, got["yt-views"].AverageRating)

	_, present := got["tt-likes"]
	assert.False(t, present)
}

func TestRoundHalfUp1(t *testing.T) {
	assert.Equal(t, 4.3, roundHalfUp1(4.25))
	assert.Equal(t, 4.2, roundHalfUp1(4.24))
	assert.Equal(t, 5.0, roundHalfUp1(4.96))
	assert.Equal(t, 1.0, roundHalfUp1(1.0))
}
