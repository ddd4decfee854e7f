package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"studio-backend/internal/currency"
	"studio-backend/internal/domain"
	"studio-backend/internal/pricing"
	"studio-backend/internal/validate"
)

// ParamGetter decodes YAML configuration documents from Parameter Store onto
// pre-populated defaults.
type ParamGetter interface {
	GetYAML(ctx context.Context, name string, out any) error
}

// PricingService answers quote and estimate requests. Business rules (package
// table, discount tiers, estimator tables) live in a YAML parameter; they are
// loaded lazily, once, with the compiled defaults standing in when the
// parameter is missing or malformed. A bad config must never block a quote.
type PricingService struct {
	params      ParamGetter
	paramPrefix string
	logger      *slog.Logger

	rulesMu     sync.RWMutex
	rulesLoaded bool
	rules       pricing.Rules
}

func NewPricingService(params ParamGetter, paramPrefix string, logger *slog.Logger) (*PricingService, error) {
	if params == nil {
		return nil, errors.New("usecase: param getter must not be nil")
	}
	if logger == nil {
		return nil, errors.New("usecase: logger must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("usecase: parameter prefix must not be empty")
	}
	return &PricingService{
		params:      params,
		paramPrefix: paramPrefix,
		logger:      logger,
	}, nil
}

type PackageQuoteInput struct {
	PackageID       string
	Sessions        int
	DurationMinutes int
}

type BulkQuoteInput struct {
	Sessions           int
	DurationMinutes    int
	CustomDiscountRate *int
	LoyaltyDiscount    int
}

type QuoteOutput struct {
	Pricing      domain.CalculatedPricing
	DisplayTotal string
}

// Contact identifies the person behind an inquiry. Email is required; phone
// is optional but checked when present.
type Contact struct {
	Name  string
	Email string
	Phone string
}

type PerformanceInquiry struct {
	Contact    Contact
	EventType  string
	Duration   string
	GuestCount string
	Timeline   string
	Budget     string
}

type CollaborationInquiry struct {
	Contact         Contact
	ProjectScope    string
	Timeline        string
	ExperienceLevel string
	CreativeVision  string
	Budget          string
}

type EstimateOutput struct {
	EstimateID   string
	Estimate     domain.PriceEstimate
	DisplayRange string
}

func (s *PricingService) PackageQuote(ctx context.Context, in PackageQuoteInput) (QuoteOutput, error) {
	rules := s.loadRules(ctx)
	p := pricing.PackagePricing(pricing.PackageInput{
		ID:              strings.TrimSpace(in.PackageID),
		Sessions:        in.Sessions,
		DurationMinutes: in.DurationMinutes,
	}, rules)
	return QuoteOutput{
		Pricing:      p,
		DisplayTotal: currency.FormatWhole(p.TotalPrice, p.Currency),
	}, nil
}

func (s *PricingService) BulkQuote(ctx context.Context, in BulkQuoteInput) (QuoteOutput, error) {
	rules := s.loadRules(ctx)
	p := pricing.BulkPricing(in.Sessions, pricing.BulkOptions{
		DurationMinutes:    in.DurationMinutes,
		CustomDiscountRate: in.CustomDiscountRate,
		LoyaltyDiscount:    in.LoyaltyDiscount,
	}, rules)
	return QuoteOutput{
		Pricing:      p,
		DisplayTotal: currency.FormatWhole(p.TotalPrice, p.Currency),
	}, nil
}

func (s *PricingService) EstimatePerformance(ctx context.Context, in PerformanceInquiry) (EstimateOutput, error) {
	if err := validateContact(in.Contact); err != nil {
		return EstimateOutput{}, err
	}
	rules := s.loadRules(ctx)
	est := pricing.EstimatePerformance(pricing.PerformanceInput{
		EventType:  in.EventType,
		Duration:   in.Duration,
		GuestCount: in.GuestCount,
		Timeline:   in.Timeline,
		Budget:     in.Budget,
	}, rules)
	return s.estimateOutput(est, rules), nil
}

func (s *PricingService) EstimateCollaboration(ctx context.Context, in CollaborationInquiry) (EstimateOutput, error) {
	if err := validateContact(in.Contact); err != nil {
		return EstimateOutput{}, err
	}
	rules := s.loadRules(ctx)
	est := pricing.EstimateCollaboration(pricing.CollaborationInput{
		ProjectScope:    in.ProjectScope,
		Timeline:        in.Timeline,
		ExperienceLevel: in.ExperienceLevel,
		CreativeVision:  in.CreativeVision,
		Budget:          in.Budget,
	}, rules)
	return s.estimateOutput(est, rules), nil
}

func (s *PricingService) estimateOutput(est domain.PriceEstimate, rules pricing.Rules) EstimateOutput {
	return EstimateOutput{
		EstimateID: newUUID(),
		Estimate:   est,
		DisplayRange: currency.FormatWhole(est.EstimatedRange.Min, rules.Currency) +
			" - " + currency.FormatWhole(est.EstimatedRange.Max, rules.Currency),
	}
}

func validateContact(c Contact) error {
	if !validate.Required(c.Name) {
		return newError(ErrorInvalidInput, "missing_name", nil)
	}
	if !validate.MaxLength(c.Name, 100) {
		return newError(ErrorInvalidInput, "name_too_long", nil)
	}
	if !validate.Email(c.Email) {
		return newError(ErrorInvalidInput, "invalid_email", nil)
	}
	if validate.Required(c.Phone) && !validate.Phone(c.Phone) {
		return newError(ErrorInvalidInput, "invalid_phone", nil)
	}
	return nil
}

// loadRules returns the active rules, fetching the YAML override from
// Parameter Store on first use. Fetch or decode failures are logged and the
// compiled defaults win; the outcome is cached either way so a flaky
// parameter store is consulted once, not per request.
func (s *PricingService) loadRules(ctx context.Context) pricing.Rules {
	s.rulesMu.RLock()
	if s.rulesLoaded {
		defer s.rulesMu.RUnlock()
		return s.rules
	}
	s.rulesMu.RUnlock()

	s.rulesMu.Lock()
	defer s.rulesMu.Unlock()
	if s.rulesLoaded {
		return s.rules
	}

	rules := pricing.DefaultRules()
	if err := s.params.GetYAML(ctx, s.paramPrefix+"/pricing_rules", &rules); err != nil {
		s.logger.Warn("pricing rules parameter unavailable, using defaults", "err", err)
		rules = pricing.DefaultRules()
	}

	s.rules = rules
	s.rulesLoaded = true
	return s.rules
}

var newUUID = func() string {
	return uuid.NewString()
}
