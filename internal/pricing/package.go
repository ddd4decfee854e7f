package pricing

import (
	"math"

	"studio-backend/internal/domain"
)

const standardDurationMinutes = 60

// PackageInput describes the package being priced. Sessions defaults to 1 and
// DurationMinutes to 60 when unset or invalid.
type PackageInput struct {
	ID              string
	Sessions        int
	DurationMinutes int
}

// BulkOptions tunes an ad-hoc bulk order that is not tied to a catalog id.
type BulkOptions struct {
	DurationMinutes int
	// CustomDiscountRate, when non-nil, replaces the tier lookup entirely.
	CustomDiscountRate *int
	// LoyaltyDiscount is added on top of the tier (or custom) rate. The
	// combined rate is capped at Rules.MaxCombinedDiscount.
	LoyaltyDiscount int
}

func round(v float64) int {
	return int(math.Round(v))
}

// rescaleForDuration scales a per-session price for a non-standard lesson
// length. Rounding happens here, before session multiplication, so a quote is
// reproducible regardless of session count.
func rescaleForDuration(perSession, durationMinutes int) int {
	if durationMinutes <= 0 || durationMinutes == standardDurationMinutes {
		return perSession
	}
	return round(float64(perSession) * float64(durationMinutes) / standardDurationMinutes)
}

// breakdown assembles a CalculatedPricing from the normalized inputs. The
// savings figure compares against buying the same sessions one at a time at
// the flat single-lesson rate, not against the package's own undiscounted
// total.
func breakdown(perSession, sessions, discountPercent, referencePerSession int, currency string) domain.CalculatedPricing {
	baseTotal := perSession * sessions
	discountAmount := round(float64(baseTotal) * float64(discountPercent) / 100)
	totalPrice := baseTotal - discountAmount

	p := domain.CalculatedPricing{
		BasePrice:          perSession,
		TotalSessions:      sessions,
		DiscountPercentage: discountPercent,
		DiscountAmount:     discountAmount,
		TotalPrice:         totalPrice,
		PricePerSession:    round(float64(totalPrice) / float64(sessions)),
		Currency:           currency,
		DiscountApplied:    discountPercent > 0,
	}
	if sessions > 1 {
		if savings := referencePerSession*sessions - totalPrice; savings > 0 {
			p.Savings = savings
		}
	}
	return p
}

// PackagePricing prices a catalog package. Unknown ids fall back to the flat
// single-lesson rate with no discount.
func PackagePricing(in PackageInput, rules Rules) domain.CalculatedPricing {
	sessions := in.Sessions
	if sessions <= 0 {
		sessions = 1
	}
	duration := in.DurationMinutes
	if duration <= 0 {
		duration = standardDurationMinutes
	}

	rule, ok := rules.Packages[in.ID]
	if !ok {
		rule = PackageRule{BasePrice: rules.SingleLessonPrice}
	}

	perSession := rescaleForDuration(rule.BasePrice, duration)
	reference := rescaleForDuration(rules.SingleLessonPrice, duration)
	return breakdown(perSession, sessions, rule.DiscountPercent, reference, rules.Currency)
}

// BulkPricing prices an arbitrary session count against the tier schedule.
// The highest threshold the count meets wins, regardless of tier order in the
// configuration.
func BulkPricing(sessions int, opts BulkOptions, rules Rules) domain.CalculatedPricing {
	if sessions <= 0 {
		sessions = 1
	}
	duration := opts.DurationMinutes
	if duration <= 0 {
		duration = standardDurationMinutes
	}

	discount := 0
	if opts.CustomDiscountRate != nil {
		if r := *opts.CustomDiscountRate; r > 0 {
			discount = r
		}
	} else {
		discount = tierDiscount(sessions, rules.BulkTiers)
	}
	if opts.LoyaltyDiscount > 0 {
		discount += opts.LoyaltyDiscount
	}
	if limit := rules.MaxCombinedDiscount; limit > 0 && discount > limit {
		discount = limit
	}

	perSession := rescaleForDuration(rules.SingleLessonPrice, duration)
	return breakdown(perSession, sessions, discount, perSession, rules.Currency)
}

func tierDiscount(sessions int, tiers []DiscountTier) int {
	best, bestThreshold := 0, -1
	for _, t := range tiers {
		if sessions >= t.MinSessions && t.MinSessions > bestThreshold {
			best, bestThreshold = t.Percent, t.MinSessions
		}
	}
	return best
}
