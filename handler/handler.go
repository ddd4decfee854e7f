// Package handler adapts API Gateway proxy events to the usecase layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"studio-backend/internal/domain"
	"studio-backend/internal/usecase"
)

// PricingUseCase is the quote/estimate surface the handler consumes.
type PricingUseCase interface {
	PackageQuote(ctx context.Context, in usecase.PackageQuoteInput) (usecase.QuoteOutput, error)
	BulkQuote(ctx context.Context, in usecase.BulkQuoteInput) (usecase.QuoteOutput, error)
	EstimatePerformance(ctx context.Context, in usecase.PerformanceInquiry) (usecase.EstimateOutput, error)
	EstimateCollaboration(ctx context.Context, in usecase.CollaborationInquiry) (usecase.EstimateOutput, error)
}

// DashboardUseCase is the analytics surface the handler consumes.
type DashboardUseCase interface {
	TestimonialStats(ctx context.Context, f usecase.TestimonialFilter) (domain.TestimonialStats, error)
	JourneyMetrics(ctx context.Context, journeyID string) (domain.JourneyMetrics, error)
	Summary(ctx context.Context) (usecase.DashboardSummary, error)
}

type Handler struct {
	pricing   PricingUseCase
	dashboard DashboardUseCase
}

func NewHandler(pricing PricingUseCase, dashboard DashboardUseCase) (*Handler, error) {
	if pricing == nil {
		return nil, errors.New("handler: pricing usecase must not be nil")
	}
	if dashboard == nil {
		return nil, errors.New("handler: dashboard usecase must not be nil")
	}
	return &Handler{pricing: pricing, dashboard: dashboard}, nil
}

type contactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type packageQuoteRequest struct {
	PackageID       string `json:"packageId"`
	Sessions        int    `json:"sessions"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}

type bulkQuoteRequest struct {
	Sessions           int  `json:"sessions"`
	DurationMinutes    int  `json:"durationMinutes,omitempty"`
	CustomDiscountRate *int `json:"customDiscountRate,omitempty"`
	LoyaltyDiscount    int  `json:"loyaltyDiscount,omitempty"`
}

type quoteResponse struct {
	Pricing      domain.CalculatedPricing `json:"pricing"`
	DisplayTotal string                   `json:"displayTotal"`
}

type performanceEstimateRequest struct {
	Contact    contactRequest `json:"contact"`
	EventType  string         `json:"eventType,omitempty"`
	Duration   string         `json:"duration,omitempty"`
	GuestCount string         `json:"guestCount,omitempty"`
	Timeline   string         `json:"timeline,omitempty"`
	Budget     string         `json:"budget,omitempty"`
}

type collaborationEstimateRequest struct {
	Contact         contactRequest `json:"contact"`
	ProjectScope    string         `json:"projectScope,omitempty"`
	Timeline        string         `json:"timeline,omitempty"`
	ExperienceLevel string         `json:"experienceLevel,omitempty"`
	CreativeVision  string         `json:"creativeVision,omitempty"`
	Budget          string         `json:"budget,omitempty"`
}

type estimateResponse struct {
	EstimateID   string               `json:"estimateId"`
	Estimate     domain.PriceEstimate `json:"estimate"`
	DisplayRange string               `json:"displayRange"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// Handle routes one API Gateway proxy event.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(event.Headers)
	path := strings.Trim(event.Path, "/")
	segments := strings.Split(path, "/")

	switch {
	case event.HTTPMethod == http.MethodPost && path == "pricing/package":
		return h.packageQuote(ctx, event.Body, corrID), nil
	case event.HTTPMethod == http.MethodPost && path == "pricing/bulk":
		return h.bulkQuote(ctx, event.Body, corrID), nil
	case event.HTTPMethod == http.MethodPost && path == "estimates/performance":
		return h.estimatePerformance(ctx, event.Body, corrID), nil
	case event.HTTPMethod == http.MethodPost && path == "estimates/collaboration":
		return h.estimateCollaboration(ctx, event.Body, corrID), nil
	case event.HTTPMethod == http.MethodGet && path == "testimonials/stats":
		return h.testimonialStats(ctx, event.QueryStringParameters, corrID), nil
	case event.HTTPMethod == http.MethodGet && path == "dashboard/summary":
		return h.summary(ctx, corrID), nil
	case event.HTTPMethod == http.MethodGet && len(segments) == 3 && segments[0] == "journeys" && segments[2] == "metrics":
		return h.journeyMetrics(ctx, segments[1], corrID), nil
	default:
		return respondError(http.StatusNotFound, string(usecase.ErrorNotFound), "unknown_route", corrID), nil
	}
}

func (h *Handler) packageQuote(ctx context.Context, body, corrID string) events.APIGatewayProxyResponse {
	var req packageQuoteRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return respondError(http.StatusBadRequest, string(usecase.ErrorInvalidInput), "malformed_body", corrID)
	}
	out, err := h.pricing.PackageQuote(ctx, usecase.PackageQuoteInput{
		PackageID:       req.PackageID,
		Sessions:        req.Sessions,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return respondUseCaseError(err, corrID)
	}
	return respondJSON(http.StatusOK, quoteResponse{Pricing: out.Pricing, DisplayTotal: out.DisplayTotal}, corrID)
}

func (h *Handler) bulkQuote(ctx context.Context, body, corrID string) events.APIGatewayProxyResponse {
	var req bulkQuoteRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return respondError(http.StatusBadRequest, string(usecase.ErrorInvalidInput), "malformed_body", corrID)
	}
	out, err := h.pricing.BulkQuote(ctx, usecase.BulkQuoteInput{
		Sessions:           req.Sessions,
		DurationMinutes:    req.DurationMinutes,
		CustomDiscountRate: req.CustomDiscountRate,
		LoyaltyDiscount:    req.LoyaltyDiscount,
	})
	if err != nil {
		return respondUseCaseError(err, corrID)
	}
	return respondJSON(http.StatusOK, quoteResponse{Pricing: out.Pricing, DisplayTotal: out.DisplayTotal}, corrID)
}

func (h *Handler) estimatePerformance(ctx context.Context, body, corrID string) events.APIGatewayProxyResponse {
	var req performanceEstimateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return respondError(http.StatusBadRequest, string(usecase.ErrorInvalidInput), "malformed_body", corrID)
	}
	out, err := h.pricing.EstimatePerformance(ctx, usecase.PerformanceInquiry{
		Contact:    contactFromRequest(req.Contact),
		EventType:  req.EventType,
		Duration:   req.Duration,
		GuestCount: req.GuestCount,
		Timeline:   req.Timeline,
		Budget:     req.Budget,
	})
	if err != nil {
		return respondUseCaseError(err, corrID)
	}
	return respondJSON(http.StatusOK, estimateResponse{
		EstimateID:   out.EstimateID,
		Estimate:     out.Estimate,
		DisplayRange: out.DisplayRange,
	}, corrID)
}

func (h *Handler) estimateCollaboration(ctx context.Context, body, corrID string) events.APIGatewayProxyResponse {
	var req collaborationEstimateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return respondError(http.StatusBadRequest, string(usecase.ErrorInvalidInput), "malformed_body", corrID)
	}
	out, err := h.pricing.EstimateCollaboration(ctx, usecase.CollaborationInquiry{
		Contact:         contactFromRequest(req.Contact),
		ProjectScope:    req.ProjectScope,
		Timeline:        req.Timeline,
		ExperienceLevel: req.ExperienceLevel,
		CreativeVision:  req.CreativeVision,
		Budget:          req.Budget,
	})
	if err != nil {
		return respondUseCaseError(err, corrID)
	}
	return respondJSON(http.StatusOK, estimateResponse{
		EstimateID:   out.EstimateID,
		Estimate:     out.Estimate,
		DisplayRange: out.DisplayRange,
	}, corrID)
}

func (h *Handler) testimonialStats(ctx context.Context, query map[string]string, corrID string) events.APIGatewayProxyResponse {
	f := usecase.TestimonialFilter{
		Service:      domain.Service(query["service"]),
		VerifiedOnly: query["verified"] == "true",
		FeaturedOnly: query["featured"] == "true",
	}
	stats, err := h.dashboard.TestimonialStats(ctx, f)
	if err != nil {
		return respondUseCaseError(err, corrID)
	}
	return respondJSON(http.StatusOK, stats, corrID)
}

func (h *Handler) summary(ctx context.Context, corrID string) events.APIGatewayProxyResponse {
	out, err := h.dashboard.Summary(ctx)
	if err != nil {
		return respondUseCaseError(err, corrID)
	}
	return respondJSON(http.StatusOK, out, corrID)
}

func (h *Handler) journeyMetrics(ctx context.Context, journeyID, corrID string) events.APIGatewayProxyResponse {
	metrics, err := h.dashboard.JourneyMetrics(ctx, journeyID)
	if err != nil {
		return respondUseCaseError(err, corrID)
	}
	return respondJSON(http.StatusOK, metrics, corrID)
}

func contactFromRequest(c contactRequest) usecase.Contact {
	return usecase.Contact{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func respondUseCaseError(err error, corrID string) events.APIGatewayProxyResponse {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return respondError(http.StatusInternalServerError, string(usecase.ErrorInternal), "", corrID)
	}
	status := http.StatusInternalServerError
	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		status = http.StatusBadRequest
	case usecase.ErrorNotFound:
		status = http.StatusNotFound
	case usecase.ErrorUpstream, usecase.ErrorBadData:
		status = http.StatusBadGateway
	}
	return respondError(status, string(ucErr.Code), ucErr.Reason, corrID)
}

func respondJSON(status int, payload any, corrID string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		return respondError(http.StatusInternalServerError, string(usecase.ErrorInternal), "encode_error", corrID)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders(corrID),
		Body:       string(body),
	}
}

func respondError(status int, code, reason, corrID string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(errorResponse{Error: code, Reason: reason})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders(corrID),
		Body:       string(body),
	}
}

func responseHeaders(corrID string) map[string]string {
	return map[string]string{
		"Content-Type":     "application/json",
		"X-Correlation-Id": corrID,
	}
}

// correlationID reuses the caller's id when present (any header casing) and
// mints one otherwise.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, "x-correlation-id") && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
