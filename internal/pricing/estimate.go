package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"studio-backend/internal/domain"
)

// Range variance per inquiry domain. Collaboration work has looser scope, so
// it gets the wider band.
const (
	performanceVariance   = 0.20
	collaborationVariance = 0.25
)

// PerformanceInput carries the raw answers from a performance inquiry form.
// Any field may be empty or "unsure"; the estimator resolves those to
// conservative defaults and says so in the returned factors.
type PerformanceInput struct {
	EventType  string
	Duration   string
	GuestCount string // bucket name or free text such as "about 80"
	Timeline   string
	Budget     string
}

// CollaborationInput carries the raw answers from a collaboration inquiry.
type CollaborationInput struct {
	ProjectScope    string
	Timeline        string
	ExperienceLevel string
	CreativeVision  string
	Budget          string
}

// estimateBuilder accumulates adjustments and bookkeeping shared by both
// estimators.
type estimateBuilder struct {
	base        int
	center      int
	adjustments []domain.PriceAdjustment
	factors     []string
	informative int
	fields      int
}

func newEstimateBuilder(base int) *estimateBuilder {
	return &estimateBuilder{base: base, center: base}
}

// applyMultiplier scales the running center and records the difference as a
// named adjustment, so the multiplicative step still shows up as one signed
// line item.
func (b *estimateBuilder) applyMultiplier(label string, mult float64) {
	scaled := round(float64(b.center) * mult)
	if scaled != b.center {
		b.adjustments = append(b.adjustments, domain.PriceAdjustment{Label: label, Amount: scaled - b.center})
	}
	b.center = scaled
}

func (b *estimateBuilder) addAdjustment(label string, amount int) {
	if amount == 0 {
		return
	}
	b.adjustments = append(b.adjustments, domain.PriceAdjustment{Label: label, Amount: amount})
	b.center += amount
}

// resolveField normalizes a raw enum answer against the configured keys.
// Unknown, empty, and "unsure"-style answers resolve to fallback and count as
// uninformative.
func (b *estimateBuilder) resolveField(name, raw, fallback string, known func(string) bool) string {
	b.fields++
	v := strings.ToLower(strings.TrimSpace(raw))
	if v != "" && v != "unsure" && v != "not-sure" && v != "unknown" && known(v) {
		b.informative++
		return v
	}
	b.factors = append(b.factors, fmt.Sprintf("%s not specified, assuming %s", name, fallback))
	return fallback
}

func (b *estimateBuilder) confidence() domain.Confidence {
	if b.fields == 0 {
		return domain.ConfidenceLow
	}
	ratio := float64(b.informative) / float64(b.fields)
	switch {
	case ratio >= 0.8:
		return domain.ConfidenceHigh
	case ratio >= 0.5:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func (b *estimateBuilder) build(variance float64, validDays int, consult bool) domain.PriceEstimate {
	center := b.center
	if center < 0 {
		center = 0
	}
	total := 0
	for _, a := range b.adjustments {
		total += a.Amount
	}
	conf := b.confidence()
	return domain.PriceEstimate{
		EstimatedRange: domain.PriceRange{
			Min: round(float64(center) - float64(center)*variance),
			Max: round(float64(center) + float64(center)*variance),
		},
		BasePrice:               b.base,
		Adjustments:             b.adjustments,
		TotalAdjustment:         total,
		Confidence:              conf,
		Factors:                 b.factors,
		ConsultationRecommended: consult || conf == domain.ConfidenceLow,
		EstimateValidDays:       validDays,
	}
}

func wantsToDiscussBudget(budget string) bool {
	return strings.Contains(strings.ToLower(budget), "discuss")
}

// EstimatePerformance produces a heuristic quote range for a live performance
// inquiry. It never fails: every malformed field degrades to its conservative
// default.
func EstimatePerformance(in PerformanceInput, rules Rules) domain.PriceEstimate {
	r := rules.Performance
	b := newEstimateBuilder(r.BasePrice)

	eventType := b.resolveField("event type", in.EventType, defaultEventType, mapHasKeyF(r.EventTypes))
	if mult, ok := r.EventTypes[eventType]; ok && mult != 1.0 {
		b.applyMultiplier("event type: "+eventType, mult)
	}

	duration := b.resolveField("duration", in.Duration, defaultDuration, mapHasKey(r.Durations))
	b.addAdjustment("duration: "+duration, r.Durations[duration])

	guests := b.resolveField("guest count", normalizeGuestCount(in.GuestCount, r.GuestCounts), defaultGuestCount, mapHasKey(r.GuestCounts))
	b.addAdjustment("guest count: "+guests, r.GuestCounts[guests])

	timeline := b.resolveField("timeline", in.Timeline, defaultTimeline, mapHasKey(r.Timelines))
	b.addAdjustment("timeline: "+timeline, r.Timelines[timeline])

	return b.build(performanceVariance, rules.EstimateValidDays, wantsToDiscussBudget(in.Budget))
}

// EstimateCollaboration produces a heuristic quote range for a collaboration
// inquiry, folding in a complexity tier inferred from the creative vision
// text.
func EstimateCollaboration(in CollaborationInput, rules Rules) domain.PriceEstimate {
	r := rules.Collaboration
	b := newEstimateBuilder(r.BasePrice)

	scope := b.resolveField("project scope", in.ProjectScope, defaultScope, mapHasKeyF(r.Scopes))
	if mult, ok := r.Scopes[scope]; ok && mult != 1.0 {
		b.applyMultiplier("project scope: "+scope, mult)
	}

	timeline := b.resolveField("timeline", in.Timeline, defaultTimeline, mapHasKey(r.Timelines))
	b.addAdjustment("timeline: "+timeline, r.Timelines[timeline])

	experience := b.resolveField("experience level", in.ExperienceLevel, defaultExperience, mapHasKey(r.Experiences))
	b.addAdjustment("experience: "+experience, r.Experiences[experience])

	complexity := ClassifyVision(in.CreativeVision, rules.Keywords)
	b.fields++
	if len(strings.TrimSpace(in.CreativeVision)) >= 20 {
		b.informative++
		b.factors = append(b.factors, "creative vision suggests "+string(complexity)+" complexity")
	} else {
		b.factors = append(b.factors, "no creative vision provided, assuming low complexity")
		complexity = ComplexityLow
	}
	b.addAdjustment("complexity: "+string(complexity), r.Complexity[string(complexity)])

	consult := wantsToDiscussBudget(in.Budget) || complexity == ComplexityAmbitious
	return b.build(collaborationVariance, rules.EstimateValidDays, consult)
}

func mapHasKey(m map[string]int) func(string) bool {
	return func(k string) bool { _, ok := m[k]; return ok }
}

func mapHasKeyF(m map[string]float64) func(string) bool {
	return func(k string) bool { _, ok := m[k]; return ok }
}

// normalizeGuestCount accepts either a configured bucket name or free text
// containing a number ("about 80 people"). Unparseable input falls through to
// the smallest bucket via resolveField's default path.
func normalizeGuestCount(raw string, buckets map[string]int) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := buckets[v]; ok {
		return v
	}
	digits := strings.Builder{}
	for _, r := range v {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil || n <= 0 {
		return ""
	}
	switch {
	case n < 20:
		return "under-20"
	case n <= 50:
		return "20-50"
	case n <= 100:
		return "50-100"
	default:
		return "over-100"
	}
}
