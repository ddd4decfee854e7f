// Package testimonials reduces testimonial collections into the aggregate
// shapes the site's stats panels render.
package testimonials

import (
	"math"

	"studio-backend/internal/domain"
)

// Predicate selects testimonials for FilteredStats.
type Predicate func(domain.Testimonial) bool

// Stats aggregates in a single pass. An empty (or nil) input yields the
// all-zero shape rather than an error, and a service with no entries reports
// an average of exactly 0.
//
// Per-service percentages are rounded independently against the final total,
// so the three buckets can sum to 99 or 101. That artifact is accepted; the
// buckets are displayed separately, never summed.
func Stats(ts []domain.Testimonial) domain.TestimonialStats {
	type bucket struct {
		count     int
		ratingSum int
	}
	buckets := map[domain.Service]*bucket{}
	for _, s := range domain.Services {
		buckets[s] = &bucket{}
	}

	stats := domain.TestimonialStats{
		ByService: make(map[domain.Service]domain.ServiceStats, len(domain.Services)),
	}
	ratingSum := 0
	for _, t := range ts {
		stats.Total++
		ratingSum += t.Rating
		if t.Featured {
			stats.Featured++
		}
		if t.Verified {
			stats.Verified++
		}
		if b, ok := buckets[t.Service]; ok {
			b.count++
			b.ratingSum += t.Rating
		}
	}

	if stats.Total > 0 {
		stats.AverageRating = round1(float64(ratingSum) / float64(stats.Total))
	}
	for _, s := range domain.Services {
		b := buckets[s]
		out := domain.ServiceStats{Count: b.count}
		if stats.Total > 0 {
			out.Percentage = int(math.Round(100 * float64(b.count) / float64(stats.Total)))
		}
		if b.count > 0 {
			out.AverageRating = round1(float64(b.ratingSum) / float64(b.count))
		}
		stats.ByService[s] = out
	}
	return stats
}

// FilteredStats applies pred and aggregates the survivors. A predicate that
// matches nothing produces the same all-zero shape as an empty input.
func FilteredStats(ts []domain.Testimonial, pred Predicate) domain.TestimonialStats {
	if pred == nil {
		return Stats(ts)
	}
	filtered := make([]domain.Testimonial, 0, len(ts))
	for _, t := range ts {
		if pred(t) {
			filtered = append(filtered, t)
		}
	}
	return Stats(filtered)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
