package stats

import (
	"github.com/akg580/review-insights/internal/domain"
)

type ageBucket struct {
	label    string
	min, max int // inclusive; max < 0 means open-ended
}

var ageBuckets = []ageBucket{
	{"18-24", 18, 24},
	{"25-34", 25, 34},
	{"35-44", 35, 44},
	{"45+", 45, -1},
}

// AgeGroups buckets reviews by author age. Every bucket is returned, in
// ascending order, even when empty. Reviews without an age or with an age
// below 18 are ignored.
func AgeGroups(reviews []domain.Review) []domain.AgeGroupInsight {
	counts := make([]int, len(ageBuckets))
	sums := make([]int, len(ageBuckets))

	for i := range reviews {
		if reviews[i].UserAge == nil {
			continue
		}
		if b := bucketFor(*reviews[i].UserAge); b >= 0 {
			counts[b]++
			sums[b] += reviews[i].Rating
		}
	}

	out := make([]domain.AgeGroupInsight, len(ageBuckets))
	for b, bucket := range ageBuckets {
		out[b] = domain.AgeGroupInsight{Range: bucket.label, Count: counts[b]}
		if counts[b] > 0 {
			out[b].AverageRating = roundOneDecimal(float64(sums[b]) / float64(counts[b]))
		}
	}
	return out
}

func bucketFor(age int) int {
	for i, b := range ageBuckets {
		if age >= b.min && (b.max < 0 || age <= b.max) {
			return i
		}
	}
	return -1
}
