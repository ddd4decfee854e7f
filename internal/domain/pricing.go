package domain

// LessonPackage is a static catalog entry. Pricing is always derived from it,
// never stored on it.
type LessonPackage struct {
	ID              string   `json:"id"`
	Sessions        int      `json:"sessions"` // 0 = unlimited
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	Features        []string `json:"features,omitempty"`
}

// CalculatedPricing is the derived price breakdown for a lesson package or
// bulk order.
//
// Invariants: TotalPrice = BasePrice*TotalSessions - DiscountAmount,
// PricePerSession = round(TotalPrice/TotalSessions).
type CalculatedPricing struct {
	BasePrice          int    `json:"basePrice"`
	TotalSessions      int    `json:"totalSessions"`
	DiscountPercentage int    `json:"discountPercentage"`
	DiscountAmount     int    `json:"discountAmount"`
	TotalPrice         int    `json:"totalPrice"`
	PricePerSession    int    `json:"pricePerSession"`
	Currency           string `json:"currency"`
	// Savings compares against buying single lessons at the flat reference
	// rate; present only when it is positive and more than one session is
	// being bought.
	Savings         int  `json:"savings,omitempty"`
	DiscountApplied bool `json:"discountApplied"`
}

// Confidence qualifies how much of an estimate's input was informative rather
// than defaulted or ambiguous.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// PriceAdjustment is one named, signed contribution to an estimate.
type PriceAdjustment struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

// PriceRange bounds an estimate.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PriceEstimate is the heuristic quote produced for performance and
// collaboration inquiries. It is a starting point for a conversation, not a
// binding price.
type PriceEstimate struct {
	EstimatedRange          PriceRange        `json:"estimatedRange"`
	BasePrice               int               `json:"basePrice"`
	Adjustments             []PriceAdjustment `json:"adjustments"`
	TotalAdjustment         int               `json:"totalAdjustment"`
	Confidence              Confidence        `json:"confidence"`
	Factors                 []string          `json:"factors"`
	ConsultationRecommended bool              `json:"consultationRecommended"`
	EstimateValidDays       int               `json:"estimateValidDays"`
}
