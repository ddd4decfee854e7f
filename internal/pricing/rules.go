// Package pricing computes lesson-package pricing, bulk-order pricing, and
// heuristic inquiry estimates. Every calculator is pure: it operates on the
// inputs and the Rules it is handed, holds no state, and never panics on
// malformed input.
package pricing

// PackageRule is the static discount configuration for one catalog id.
type PackageRule struct {
	BasePrice       int `yaml:"base_price"`
	DiscountPercent int `yaml:"discount_percent"`
}

// DiscountTier is one row of the bulk discount schedule. Tiers are matched
// highest threshold first.
type DiscountTier struct {
	MinSessions int `yaml:"min_sessions"`
	Percent     int `yaml:"percent"`
}

// PerformanceRules configures the performance-inquiry estimator.
type PerformanceRules struct {
	BasePrice   int                `yaml:"base_price"`
	EventTypes  map[string]float64 `yaml:"event_types"` // multiplier per event type
	Durations   map[string]int     `yaml:"durations"`   // signed adjustment per bucket
	GuestCounts map[string]int     `yaml:"guest_counts"`
	Timelines   map[string]int     `yaml:"timelines"`
}

// CollaborationRules configures the collaboration-inquiry estimator.
type CollaborationRules struct {
	BasePrice   int                `yaml:"base_price"`
	Scopes      map[string]float64 `yaml:"scopes"` // multiplier per project scope
	Timelines   map[string]int     `yaml:"timelines"`
	Experiences map[string]int     `yaml:"experiences"`
	Complexity  map[string]int     `yaml:"complexity"` // signed adjustment per tier
}

// ComplexityKeywords drives the creative-vision classifier. Keyword lists are
// configuration, not code, so they can be tuned or localized without touching
// the classifier.
type ComplexityKeywords struct {
	Moderate  []string `yaml:"moderate"`
	High      []string `yaml:"high"`
	Ambitious []string `yaml:"ambitious"`
	// LongTextChars bumps the tier by one once the vision text passes this
	// length.
	LongTextChars int `yaml:"long_text_chars"`
}

// Rules is the full pricing configuration. A compiled-in default is always
// available; deployments overlay it from Parameter Store.
type Rules struct {
	Currency string `yaml:"currency"`
	// SingleLessonPrice is the flat walk-in rate for one lesson. It is both
	// the fallback base for unknown package ids and the reference price that
	// savings figures are computed against.
	SingleLessonPrice   int                    `yaml:"single_lesson_price"`
	Packages            map[string]PackageRule `yaml:"packages"`
	BulkTiers           []DiscountTier         `yaml:"bulk_tiers"`
	MaxCombinedDiscount int                    `yaml:"max_combined_discount"`
	Performance         PerformanceRules       `yaml:"performance"`
	Collaboration       CollaborationRules     `yaml:"collaboration"`
	Keywords            ComplexityKeywords     `yaml:"keywords"`
	EstimateValidDays   int                    `yaml:"estimate_valid_days"`
}

// DefaultRules returns the compiled-in configuration used when Parameter
// Store has no override.
func DefaultRules() Rules {
	return Rules{
		Currency:          "AUD",
		SingleLessonPrice: 50,
		Packages: map[string]PackageRule{
			"foundation-package":  {BasePrice: 50, DiscountPercent: 5},
			"progression-package": {BasePrice: 48, DiscountPercent: 10},
			"mastery-package":     {BasePrice: 45, DiscountPercent: 15},
		},
		BulkTiers: []DiscountTier{
			{MinSessions: 2, Percent: 5},
			{MinSessions: 5, Percent: 10},
			{MinSessions: 9, Percent: 15},
		},
		MaxCombinedDiscount: 25,
		Performance: PerformanceRules{
			BasePrice: 350,
			EventTypes: map[string]float64{
				"private":   1.0,
				"wedding":   1.5,
				"corporate": 1.3,
				"festival":  1.4,
			},
			Durations: map[string]int{
				"under-1hr": -50,
				"1-2hrs":    0,
				"2-3hrs":    100,
				"over-3hrs": 250,
			},
			GuestCounts: map[string]int{
				"under-20": 0,
				"20-50":    25,
				"50-100":   75,
				"over-100": 150,
			},
			Timelines: map[string]int{
				"flexible":     -25,
				"standard":     0,
				"within-month": 50,
				"urgent":       100,
			},
		},
		Collaboration: CollaborationRules{
			BasePrice: 500,
			Scopes: map[string]float64{
				"single-track": 1.0,
				"ep":           1.6,
				"album":        2.5,
				"ongoing":      2.0,
			},
			Timelines: map[string]int{
				"flexible":     -50,
				"standard":     0,
				"within-month": 75,
				"urgent":       150,
			},
			Experiences: map[string]int{
				"first-project": 50,
				"hobbyist":      0,
				"emerging":      25,
				"professional":  100,
			},
			Complexity: map[string]int{
				string(ComplexityLow):       0,
				string(ComplexityModerate):  75,
				string(ComplexityHigh):      200,
				string(ComplexityAmbitious): 400,
			},
		},
		Keywords: ComplexityKeywords{
			Moderate: []string{
				"arrangement", "harmonies", "layered", "remix", "backing",
			},
			High: []string{
				"orchestral", "film", "score", "production", "mixing", "mastering",
			},
			Ambitious: []string{
				"symphony", "experimental", "immersive", "multimedia", "installation",
			},
			LongTextChars: 280,
		},
		EstimateValidDays: 14,
	}
}

// Conservative defaults the estimators fall back to when an input is missing
// or the caller answered "unsure". Each fallback is surfaced as a factor on
// the returned estimate.
const (
	defaultEventType  = "private"
	defaultDuration   = "1-2hrs"
	defaultGuestCount = "under-20"
	defaultTimeline   = "standard"
	defaultScope      = "single-track"
	defaultExperience = "hobbyist"
)
