package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"studio-backend/internal/calc"
	"studio-backend/internal/domain"
	"studio-backend/internal/journey"
	"studio-backend/internal/testimonials"
)

// TestimonialSource reads the testimonials the content pipeline publishes.
type TestimonialSource interface {
	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
}

// SessionSource reads the session records the tracking system writes.
type SessionSource interface {
	ListSessions(ctx context.Context, journeyID string) ([]domain.UserSession, error)
}

// DashboardService assembles the aggregates the analytics dashboard renders.
// Every panel computation runs behind the calc guards: results are cached
// with a TTL, and a failing panel degrades to its fallback instead of taking
// the whole dashboard response down.
type DashboardService struct {
	testimonials TestimonialSource
	sessions     SessionSource
	analyzers    map[string]*journey.Analyzer
	cache        *calc.Cache
	cacheTTL     time.Duration
	logger       *slog.Logger
}

func NewDashboardService(
	ts TestimonialSource,
	ss SessionSource,
	maps []domain.JourneyMap,
	cache *calc.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) (*DashboardService, error) {
	if ts == nil {
		return nil, errors.New("usecase: testimonial source must not be nil")
	}
	if ss == nil {
		return nil, errors.New("usecase: session source must not be nil")
	}
	if cache == nil {
		return nil, errors.New("usecase: cache must not be nil")
	}
	if logger == nil {
		return nil, errors.New("usecase: logger must not be nil")
	}
	analyzers := make(map[string]*journey.Analyzer, len(maps))
	for _, m := range maps {
		a, err := journey.NewAnalyzer(m)
		if err != nil {
			return nil, fmt.Errorf("usecase: journey %q: %w", m.ID, err)
		}
		analyzers[m.ID] = a
	}
	return &DashboardService{
		testimonials: ts,
		sessions:     ss,
		analyzers:    analyzers,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}, nil
}

// TestimonialFilter narrows TestimonialStats. The zero value means everything.
type TestimonialFilter struct {
	Service      domain.Service
	VerifiedOnly bool
	FeaturedOnly bool
}

func (f TestimonialFilter) cacheKey() string {
	return fmt.Sprintf("testimonials:stats:%s:%t:%t", f.Service, f.VerifiedOnly, f.FeaturedOnly)
}

func (f TestimonialFilter) predicate() testimonials.Predicate {
	return func(t domain.Testimonial) bool {
		if f.Service != "" && t.Service != f.Service {
			return false
		}
		if f.VerifiedOnly && !t.Verified {
			return false
		}
		if f.FeaturedOnly && !t.Featured {
			return false
		}
		return true
	}
}

// TestimonialStats aggregates the published testimonials, filtered. Records
// with out-of-range ratings mean the content pipeline broke its contract, so
// the boundary check fails loudly rather than folding bad data into averages.
func (s *DashboardService) TestimonialStats(ctx context.Context, f TestimonialFilter) (domain.TestimonialStats, error) {
	if cached, ok := s.cache.Get(f.cacheKey()); ok {
		if stats, ok := cached.(domain.TestimonialStats); ok {
			return stats, nil
		}
	}

	ts, err := s.testimonials.ListTestimonials(ctx)
	if err != nil {
		return domain.TestimonialStats{}, newError(ErrorUpstream, "testimonial_read_error", err)
	}
	if err := calc.ValidateInputs(ts, func(t domain.Testimonial) bool {
		return t.Rating >= 1 && t.Rating <= 5
	}, "testimonial ratings"); err != nil {
		return domain.TestimonialStats{}, newError(ErrorBadData, "testimonial_rating_out_of_range", err)
	}

	stats := testimonials.FilteredStats(ts, f.predicate())
	s.cache.Set(f.cacheKey(), stats, s.cacheTTL)
	return stats, nil
}

// DashboardSummary is the one-call payload for the dashboard's overview
// panels. Panels are independent: a broken one renders as its zero shape.
type DashboardSummary struct {
	Overall  domain.TestimonialStats          `json:"overall"`
	Verified domain.TestimonialStats          `json:"verified"`
	Featured domain.TestimonialStats          `json:"featured"`
	Journeys map[string]domain.JourneyMetrics `json:"journeys"`
}

// Summary builds every overview panel in one pass, each behind calc.Batch so
// a failing aggregate degrades alone.
func (s *DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	panels := calc.Batch(s.logger, map[string]func() (domain.TestimonialStats, error){
		"overall":  func() (domain.TestimonialStats, error) { return s.TestimonialStats(ctx, TestimonialFilter{}) },
		"verified": func() (domain.TestimonialStats, error) { return s.TestimonialStats(ctx, TestimonialFilter{VerifiedOnly: true}) },
		"featured": func() (domain.TestimonialStats, error) { return s.TestimonialStats(ctx, TestimonialFilter{FeaturedOnly: true}) },
	}, map[string]domain.TestimonialStats{
		"overall":  testimonials.Stats(nil),
		"verified": testimonials.Stats(nil),
		"featured": testimonials.Stats(nil),
	})

	journeys := make(map[string]domain.JourneyMetrics, len(s.analyzers))
	for id := range s.analyzers {
		journeys[id] = calc.Safe(s.logger, "journey:"+id, domain.JourneyMetrics{JourneyID: id},
			func() (domain.JourneyMetrics, error) { return s.JourneyMetrics(ctx, id) })
	}

	return DashboardSummary{
		Overall:  panels["overall"],
		Verified: panels["verified"],
		Featured: panels["featured"],
		Journeys: journeys,
	}, nil
}

// JourneyMetrics analyzes the recorded sessions for one configured journey.
func (s *DashboardService) JourneyMetrics(ctx context.Context, journeyID string) (domain.JourneyMetrics, error) {
	analyzer, ok := s.analyzers[journeyID]
	if !ok {
		return domain.JourneyMetrics{}, newError(ErrorNotFound, "unknown_journey", nil)
	}

	key := "journey:metrics:" + journeyID
	if cached, ok := s.cache.Get(key); ok {
		if m, ok := cached.(domain.JourneyMetrics); ok {
			return m, nil
		}
	}

	sessions, err := s.sessions.ListSessions(ctx, journeyID)
	if err != nil {
		return domain.JourneyMetrics{}, newError(ErrorUpstream, "session_read_error", err)
	}

	metrics := analyzer.Analyze(sessions)
	s.cache.Set(key, metrics, s.cacheTTL)
	return metrics, nil
}

// InvalidateCache drops every cached aggregate, forcing fresh computation on
// the next read. The content pipeline calls this after publishing.
func (s *DashboardService) InvalidateCache() {
	s.cache.Clear()
}
