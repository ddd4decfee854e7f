package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/require"

	"studio-backend/internal/domain"
	"studio-backend/internal/usecase"
)

type mockPricing struct {
	quote       usecase.QuoteOutput
	estimate    usecase.EstimateOutput
	err         error
	lastPackage usecase.PackageQuoteInput
	lastBulk    usecase.BulkQuoteInput
	lastPerf    usecase.PerformanceInquiry
	lastCollab  usecase.CollaborationInquiry
}

func (m *mockPricing) PackageQuote(_ context.Context, in usecase.PackageQuoteInput) (usecase.QuoteOutput, error) {
	m.lastPackage = in
	return m.quote, m.err
}

func (m *mockPricing) BulkQuote(_ context.Context, in usecase.BulkQuoteInput) (usecase.QuoteOutput, error) {
	m.lastBulk = in
	return m.quote, m.err
}

func (m *mockPricing) EstimatePerformance(_ context.Context, in usecase.PerformanceInquiry) (usecase.EstimateOutput, error) {
	m.lastPerf = in
	return m.estimate, m.err
}

func (m *mockPricing) EstimateCollaboration(_ context.Context, in usecase.CollaborationInquiry) (usecase.EstimateOutput, error) {
	m.lastCollab = in
	return m.estimate, m.err
}

type mockDashboard struct {
	stats       domain.TestimonialStats
	metrics     domain.JourneyMetrics
	summary     usecase.DashboardSummary
	err         error
	lastFilter  usecase.TestimonialFilter
	lastJourney string
}

func (m *mockDashboard) TestimonialStats(_ context.Context, f usecase.TestimonialFilter) (domain.TestimonialStats, error) {
	m.lastFilter = f
	return m.stats, m.err
}

func (m *mockDashboard) JourneyMetrics(_ context.Context, journeyID string) (domain.JourneyMetrics, error) {
	m.lastJourney = journeyID
	return m.metrics, m.err
}

func (m *mockDashboard) Summary(context.Context) (usecase.DashboardSummary, error) {
	return m.summary, m.err
}

func newTestHandler(t *testing.T, pricing *mockPricing, dashboard *mockDashboard) *Handler {
	t.Helper()
	h, err := NewHandler(pricing, dashboard)
	require.NoError(t, err)
	return h
}

func TestNewHandler_Validates(t *testing.T) {
	_, err := NewHandler(nil, &mockDashboard{})
	require.Error(t, err)

	_, err = NewHandler(&mockPricing{}, nil)
	require.Error(t, err)
}

func TestHandle_PackageQuote(t *testing.T) {
	pricing := &mockPricing{quote: usecase.QuoteOutput{
		Pricing:      domain.CalculatedPricing{BasePrice: 50, TotalPrice: 190, TotalSessions: 4},
		DisplayTotal: "A$190",
	}}
	h := newTestHandler(t, pricing, &mockDashboard{})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/pricing/package",
		Headers:    map[string]string{"X-CORRELATION-ID": "abc-123"},
		Body:       `{"packageId":"foundation-package","sessions":4}`,
	})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "abc-123", resp.Headers["X-Correlation-Id"])
	require.Equal(t, "application/json", resp.Headers["Content-Type"])

	require.Equal(t, "foundation-package", pricing.lastPackage.PackageID)
	require.Equal(t, 4, pricing.lastPackage.Sessions)

	var body quoteResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	require.Equal(t, 190, body.Pricing.TotalPrice)
	require.Equal(t, "A$190", body.DisplayTotal)
}

func TestHandle_BulkQuote(t *testing.T) {
	pricing := &mockPricing{quote: usecase.QuoteOutput{DisplayTotal: "A$425"}}
	h := newTestHandler(t, pricing, &mockDashboard{})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/pricing/bulk",
		Body:       `{"sessions":10,"customDiscountRate":12}`,
	})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, 10, pricing.lastBulk.Sessions)
	require.NotNil(t, pricing.lastBulk.CustomDiscountRate)
	require.Equal(t, 12, *pricing.lastBulk.CustomDiscountRate)
}

func TestHandle_MalformedBody(t *testing.T) {
	h := newTestHandler(t, &mockPricing{}, &mockDashboard{})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/pricing/package",
		Body:       "{not json",
	})
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	require.Equal(t, string(usecase.ErrorInvalidInput), body.Error)
	require.Equal(t, "malformed_body", body.Reason)
}

func TestHandle_EstimatePerformance(t *testing.T) {
	pricing := &mockPricing{estimate: usecase.EstimateOutput{
		EstimateID:   "est-1",
		Estimate:     domain.PriceEstimate{Confidence: domain.ConfidenceHigh},
		DisplayRange: "A$560 - A$840",
	}}
	h := newTestHandler(t, pricing, &mockDashboard{})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/estimates/performance",
		Body:       `{"contact":{"name":"Jordan","email":"jordan@example.com"},"eventType":"wedding","duration":"2-3hrs"}`,
	})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "Jordan", pricing.lastPerf.Contact.Name)
	require.Equal(t, "wedding", pricing.lastPerf.EventType)

	var body estimateResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	require.Equal(t, "est-1", body.EstimateID)
	require.Equal(t, "A$560 - A$840", body.DisplayRange)
}

func TestHandle_EstimateCollaboration(t *testing.T) {
	pricing := &mockPricing{estimate: usecase.EstimateOutput{EstimateID: "est-2"}}
	h := newTestHandler(t, pricing, &mockDashboard{})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/estimates/collaboration",
		Body:       `{"contact":{"name":"Sam","email":"sam@example.com"},"projectScope":"album"}`,
	})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "album", pricing.lastCollab.ProjectScope)
}

func TestHandle_TestimonialStats(t *testing.T) {
	dashboard := &mockDashboard{stats: domain.TestimonialStats{Total: 4, AverageRating: 4.8}}
	h := newTestHandler(t, &mockPricing{}, dashboard)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "GET",
		Path:       "/testimonials/stats",
		QueryStringParameters: map[string]string{
			"service":  "performance",
			"verified": "true",
		},
	})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, domain.ServicePerformance, dashboard.lastFilter.Service)
	require.True(t, dashboard.lastFilter.VerifiedOnly)
	require.False(t, dashboard.lastFilter.FeaturedOnly)

	var body domain.TestimonialStats
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	require.Equal(t, 4, body.Total)
}

func TestHandle_JourneyMetrics(t *testing.T) {
	dashboard := &mockDashboard{metrics: domain.JourneyMetrics{JourneyID: "lesson-inquiry", TotalSessions: 7}}
	h := newTestHandler(t, &mockPricing{}, dashboard)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "GET",
		Path:       "/journeys/lesson-inquiry/metrics",
	})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Equal(t, "lesson-inquiry", dashboard.lastJourney)
}

func TestHandle_DashboardSummary(t *testing.T) {
	dashboard := &mockDashboard{summary: usecase.DashboardSummary{
		Overall: domain.TestimonialStats{Total: 3},
	}}
	h := newTestHandler(t, &mockPricing{}, dashboard)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "GET",
		Path:       "/dashboard/summary",
	})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestHandle_UnknownRoute(t *testing.T) {
	h := newTestHandler(t, &mockPricing{}, &mockDashboard{})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "GET",
		Path:       "/nope",
	})
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)
}

func TestHandle_ErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid input", &usecase.Error{Code: usecase.ErrorInvalidInput, Reason: "invalid_email"}, 400},
		{"not found", &usecase.Error{Code: usecase.ErrorNotFound, Reason: "unknown_journey"}, 404},
		{"upstream", &usecase.Error{Code: usecase.ErrorUpstream, Reason: "testimonial_read_error"}, 502},
		{"bad data", &usecase.Error{Code: usecase.ErrorBadData, Reason: "testimonial_rating_out_of_range"}, 502},
		{"internal", &usecase.Error{Code: usecase.ErrorInternal}, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, &mockPricing{err: tc.err}, &mockDashboard{})

			resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod: "POST",
				Path:       "/pricing/package",
				Body:       `{"packageId":"x","sessions":1}`,
			})
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			var body errorResponse
			require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
			var ucErr *usecase.Error
			require.ErrorAs(t, tc.err, &ucErr)
			require.Equal(t, string(ucErr.Code), body.Error)
		})
	}
}

func TestHandle_GeneratesCorrelationID(t *testing.T) {
	h := newTestHandler(t, &mockPricing{}, &mockDashboard{})

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: "GET",
		Path:       "/testimonials/stats",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Headers["X-Correlation-Id"])
}
