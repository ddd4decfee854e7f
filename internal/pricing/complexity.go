package pricing

import "strings"

// Complexity is the tier inferred from a collaboration inquiry's free-text
// creative vision.
type Complexity string

const (
	ComplexityLow       Complexity = "low"
	ComplexityModerate  Complexity = "moderate"
	ComplexityHigh      Complexity = "high"
	ComplexityAmbitious Complexity = "ambitious"
)

// ClassifyVision scores free text against the configured keyword lists. The
// highest list with a hit sets the tier; text longer than LongTextChars bumps
// the result one tier, since long briefs correlate with scope creep.
func ClassifyVision(text string, kw ComplexityKeywords) Complexity {
	lowered := strings.ToLower(text)

	tier := ComplexityLow
	if containsAnyKeyword(lowered, kw.Moderate) {
		tier = ComplexityModerate
	}
	if containsAnyKeyword(lowered, kw.High) {
		tier = ComplexityHigh
	}
	if containsAnyKeyword(lowered, kw.Ambitious) {
		tier = ComplexityAmbitious
	}

	if kw.LongTextChars > 0 && len(strings.TrimSpace(text)) > kw.LongTextChars {
		tier = bumpComplexity(tier)
	}
	return tier
}

func containsAnyKeyword(lowered string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(lowered, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

func bumpComplexity(c Complexity) Complexity {
	switch c {
	case ComplexityLow:
		return ComplexityModerate
	case ComplexityModerate:
		return ComplexityHigh
	default:
		return ComplexityAmbitious
	}
}
