package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"studio-backend/internal/domain"
)

type mockParams struct {
	vals  map[string]string
	err   error
	calls int
}

func (m *mockParams) GetYAML(_ context.Context, name string, out any) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	v, ok := m.vals[name]
	if !ok {
		return fmt.Errorf("param not found: %s", name)
	}
	return yaml.Unmarshal([]byte(v), out)
}

func newPricingService(t *testing.T, params ParamGetter) *PricingService {
	t.Helper()
	s, err := NewPricingService(params, "/site", slog.Default())
	require.NoError(t, err)
	return s
}

func validContact() Contact {
	return Contact{Name: "Jordan", Email: "jordan@example.com", Phone: "0412 345 678"}
}

func TestNewPricingService_Validates(t *testing.T) {
	_, err := NewPricingService(nil, "/site", slog.Default())
	require.Error(t, err)

	_, err = NewPricingService(&mockParams{}, "   ", slog.Default())
	require.Error(t, err)

	_, err = NewPricingService(&mockParams{}, "/site", nil)
	require.Error(t, err)
}

func TestPackageQuote_UsesDefaultsWhenParameterMissing(t *testing.T) {
	s := newPricingService(t, &mockParams{err: errors.New("ssm down")})

	out, err := s.PackageQuote(context.Background(), PackageQuoteInput{
		PackageID: "foundation-package",
		Sessions:  4,
	})
	require.NoError(t, err)
	require.Equal(t, 190, out.Pricing.TotalPrice)
	require.Equal(t, "A$190", out.DisplayTotal)
}

func TestPackageQuote_RulesLoadedOnceAndOverlayDefaults(t *testing.T) {
	params := &mockParams{vals: map[string]string{
		"/site/pricing_rules": "single_lesson_price: 60\npackages:\n  deluxe:\n    base_price: 80\n    discount_percent: 10\n",
	}}
	s := newPricingService(t, params)

	out, err := s.PackageQuote(context.Background(), PackageQuoteInput{PackageID: "deluxe", Sessions: 2})
	require.NoError(t, err)
	// 80*2 = 160, minus 10% = 144.
	require.Equal(t, 144, out.Pricing.TotalPrice)

	// Unknown id now falls back to the overridden flat rate.
	out, err = s.PackageQuote(context.Background(), PackageQuoteInput{PackageID: "nope", Sessions: 1})
	require.NoError(t, err)
	require.Equal(t, 60, out.Pricing.BasePrice)

	require.Equal(t, 1, params.calls)
}

func TestPackageQuote_MalformedRulesFallBackToDefaults(t *testing.T) {
	params := &mockParams{vals: map[string]string{"/site/pricing_rules": ":\tnot yaml"}}
	s := newPricingService(t, params)

	out, err := s.PackageQuote(context.Background(), PackageQuoteInput{PackageID: "foundation-package", Sessions: 4})
	require.NoError(t, err)
	require.Equal(t, 190, out.Pricing.TotalPrice)
}

func TestBulkQuote(t *testing.T) {
	s := newPricingService(t, &mockParams{err: errors.New("ssm down")})

	out, err := s.BulkQuote(context.Background(), BulkQuoteInput{Sessions: 10})
	require.NoError(t, err)
	require.Equal(t, 425, out.Pricing.TotalPrice)
	require.Equal(t, "A$425", out.DisplayTotal)
}

func TestEstimatePerformance_ValidatesContact(t *testing.T) {
	s := newPricingService(t, &mockParams{err: errors.New("ssm down")})

	cases := []struct {
		name    string
		contact Contact
		reason  string
	}{
		{"missing name", Contact{Email: "a@b.co"}, "missing_name"},
		{"bad email", Contact{Name: "J", Email: "not-an-email"}, "invalid_email"},
		{"bad phone", Contact{Name: "J", Email: "a@b.co", Phone: "123"}, "invalid_phone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.EstimatePerformance(context.Background(), PerformanceInquiry{Contact: tc.contact})
			var ucErr *Error
			require.ErrorAs(t, err, &ucErr)
			require.Equal(t, ErrorInvalidInput, ucErr.Code)
			require.Equal(t, tc.reason, ucErr.Reason)
		})
	}
}

func TestEstimatePerformance_PhoneIsOptional(t *testing.T) {
	s := newPricingService(t, &mockParams{err: errors.New("ssm down")})

	out, err := s.EstimatePerformance(context.Background(), PerformanceInquiry{
		Contact:   Contact{Name: "Jordan", Email: "jordan@example.com"},
		EventType: "wedding",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.EstimateID)
}

func TestEstimatePerformance_StampsIDAndDisplayRange(t *testing.T) {
	orig := newUUID
	newUUID = func() string { return "est-fixed" }
	defer func() { newUUID = orig }()

	s := newPricingService(t, &mockParams{err: errors.New("ssm down")})

	out, err := s.EstimatePerformance(context.Background(), PerformanceInquiry{
		Contact:    validContact(),
		EventType:  "wedding",
		Duration:   "2-3hrs",
		GuestCount: "50-100",
		Timeline:   "standard",
	})
	require.NoError(t, err)
	require.Equal(t, "est-fixed", out.EstimateID)
	require.Equal(t, domain.ConfidenceHigh, out.Estimate.Confidence)
	require.Equal(t, "A$560 - A$840", out.DisplayRange)
	require.Equal(t, 14, out.Estimate.EstimateValidDays)
}

func TestEstimateCollaboration(t *testing.T) {
	s := newPricingService(t, &mockParams{err: errors.New("ssm down")})

	out, err := s.EstimateCollaboration(context.Background(), CollaborationInquiry{
		Contact:        validContact(),
		ProjectScope:   "album",
		CreativeVision: "an experimental immersive multimedia piece",
	})
	require.NoError(t, err)
	require.True(t, out.Estimate.ConsultationRecommended)
	require.NotEmpty(t, out.DisplayRange)
}
