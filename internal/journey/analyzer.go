// Package journey turns recorded user sessions into funnel health metrics
// for the analytics dashboard: drop-off rates, time-in-step, friction points,
// and a single 0-100 optimization score.
package journey

import (
	"errors"
	"math"
	"sort"
	"strings"

	"studio-backend/internal/domain"
)

// Detection thresholds. Rates are fractions of per-step views.
const (
	exitRateThreshold     = 0.30
	exitRateHigh          = 0.40
	exitRateCritical      = 0.50
	formExitThreshold     = 0.40
	formExitCritical      = 0.60
	longTimeFactor        = 2.0
	longTimeHighFactor    = 3.0
	maxTimeSampleSec      = 600.0
	formAbandonmentWeight = 1.2
)

var severityPenalty = map[domain.FrictionSeverity]int{
	domain.SeverityCritical: 15,
	domain.SeverityHigh:     10,
	domain.SeverityMedium:   5,
	domain.SeverityLow:      2,
}

// Analyzer computes metrics for one static journey map.
type Analyzer struct {
	journeyMap domain.JourneyMap
	steps      map[string]domain.JourneyStep
}

func NewAnalyzer(m domain.JourneyMap) (*Analyzer, error) {
	if len(m.Steps) == 0 {
		return nil, errors.New("journey: map has no steps")
	}
	steps := make(map[string]domain.JourneyStep, len(m.Steps))
	for _, s := range m.Steps {
		steps[s.ID] = s
	}
	return &Analyzer{journeyMap: m, steps: steps}, nil
}

type stepAccumulator struct {
	views       int
	exits       int
	timeSamples []float64
}

// Analyze makes a single pass over the sessions. Sessions whose exit point is
// the terminal step are completions and never count as drop-offs. Time-spent
// samples are capped at 600s each so one abandoned tab does not skew a step's
// average.
func (a *Analyzer) Analyze(sessions []domain.UserSession) domain.JourneyMetrics {
	terminal := a.journeyMap.TerminalStepID()
	acc := make(map[string]*stepAccumulator, len(a.journeyMap.Steps))
	for _, s := range a.journeyMap.Steps {
		acc[s.ID] = &stepAccumulator{}
	}

	metrics := domain.JourneyMetrics{
		JourneyID:  a.journeyMap.ID,
		GoalCounts: make(map[string]int, len(a.journeyMap.Goals)),
	}
	for _, g := range a.journeyMap.Goals {
		metrics.GoalCounts[g.ID] = 0
	}

	for _, s := range sessions {
		metrics.TotalSessions++

		seen := make(map[string]bool, len(s.CompletedSteps)+1)
		for _, id := range s.CompletedSteps {
			seen[id] = true
		}
		if s.CurrentStep != "" {
			seen[s.CurrentStep] = true
		}
		for id := range seen {
			if st, ok := acc[id]; ok {
				st.views++
			}
		}

		if completed(s, terminal) {
			metrics.CompletedSessions++
		} else if st, ok := acc[s.ExitPoint]; ok && s.ExitPoint != "" {
			st.exits++
		}

		if sample := timePerStep(s); sample > 0 {
			for _, id := range s.CompletedSteps {
				if st, ok := acc[id]; ok {
					st.timeSamples = append(st.timeSamples, sample)
				}
			}
		}

		for _, goalID := range s.ConversionGoalsAchieved {
			metrics.GoalCounts[goalID]++
		}
	}

	if metrics.TotalSessions > 0 {
		metrics.ConversionRate = float64(metrics.CompletedSessions) / float64(metrics.TotalSessions)
	}

	for _, step := range a.journeyMap.Steps {
		st := acc[step.ID]
		sm := domain.StepMetrics{StepID: step.ID, Views: st.views, Exits: st.exits}
		if st.views > 0 {
			sm.ExitRate = float64(st.exits) / float64(st.views)
		}
		if len(st.timeSamples) > 0 {
			sum := 0.0
			for _, v := range st.timeSamples {
				sum += v
			}
			sm.AverageTimeSec = sum / float64(len(st.timeSamples))
		}
		metrics.Steps = append(metrics.Steps, sm)
		metrics.FrictionPoints = append(metrics.FrictionPoints, a.detectFriction(step, sm)...)
	}

	sort.SliceStable(metrics.FrictionPoints, func(i, j int) bool {
		return metrics.FrictionPoints[i].Impact > metrics.FrictionPoints[j].Impact
	})

	metrics.OptimizationScore = a.optimizationScore(metrics)
	return metrics
}

func completed(s domain.UserSession, terminal string) bool {
	if terminal == "" {
		return false
	}
	if s.ExitPoint == terminal {
		return true
	}
	for _, id := range s.CompletedSteps {
		if id == terminal {
			return true
		}
	}
	return false
}

// timePerStep spreads a session's active span evenly across its completed
// steps and caps the per-step sample.
func timePerStep(s domain.UserSession) float64 {
	if len(s.CompletedSteps) == 0 {
		return 0
	}
	span := s.LastActivity.Sub(s.StartTime).Seconds()
	if span <= 0 {
		return 0
	}
	sample := span / float64(len(s.CompletedSteps))
	if sample > maxTimeSampleSec {
		sample = maxTimeSampleSec
	}
	return sample
}

// detectFriction can return several findings for one step; a form step with a
// bad exit rate reports both the exit problem and the abandonment problem.
func (a *Analyzer) detectFriction(step domain.JourneyStep, sm domain.StepMetrics) []domain.FrictionPoint {
	if sm.Views == 0 {
		return nil
	}
	var points []domain.FrictionPoint

	if sm.ExitRate > exitRateThreshold {
		severity := domain.SeverityMedium
		switch {
		case sm.ExitRate > exitRateCritical:
			severity = domain.SeverityCritical
		case sm.ExitRate > exitRateHigh:
			severity = domain.SeverityHigh
		}
		points = append(points, domain.FrictionPoint{
			StepID:   step.ID,
			StepName: step.Name,
			Type:     domain.FrictionHighExitRate,
			Severity: severity,
			Impact:   sm.ExitRate * 100,
			Detail:   "abnormal share of sessions leave at this step",
		})
	}

	if expected := float64(step.ExpectedDuration); expected > 0 && sm.AverageTimeSec > longTimeFactor*expected {
		severity := domain.SeverityMedium
		if sm.AverageTimeSec > longTimeHighFactor*expected {
			severity = domain.SeverityHigh
		}
		points = append(points, domain.FrictionPoint{
			StepID:   step.ID,
			StepName: step.Name,
			Type:     domain.FrictionLongTimeSpent,
			Severity: severity,
			Impact:   sm.AverageTimeSec / expected * 20,
			Detail:   "average time on step far exceeds the expected duration",
		})
	}

	if isFormStep(step) && sm.ExitRate > formExitThreshold {
		severity := domain.SeverityHigh
		if sm.ExitRate > formExitCritical {
			severity = domain.SeverityCritical
		}
		points = append(points, domain.FrictionPoint{
			StepID:   step.ID,
			StepName: step.Name,
			Type:     domain.FrictionFormAbandonment,
			Severity: severity,
			// Weighted above plain exit-rate findings: losing a visitor
			// mid-form costs more than losing a browser.
			Impact: sm.ExitRate * 100 * formAbandonmentWeight,
			Detail: "visitors abandon the inquiry form at this step",
		})
	}
	return points
}

func isFormStep(step domain.JourneyStep) bool {
	for _, s := range []string{step.ID, step.Path} {
		lowered := strings.ToLower(s)
		if strings.Contains(lowered, "form") || strings.Contains(lowered, "contact") {
			return true
		}
	}
	return false
}

// optimizationScore starts at 50, earns up to 40 from the conversion rate and
// up to 10 from time efficiency, and loses a flat penalty per friction point.
// Deductions are uncapped; only the final score is clamped to 0..100.
func (a *Analyzer) optimizationScore(m domain.JourneyMetrics) int {
	score := 50.0
	score += 40 * m.ConversionRate

	for _, fp := range m.FrictionPoints {
		score -= float64(severityPenalty[fp.Severity])
	}

	expectedTotal := 0.0
	for _, s := range a.journeyMap.Steps {
		expectedTotal += float64(s.ExpectedDuration)
	}
	actualTotal := 0.0
	for _, sm := range m.Steps {
		actualTotal += sm.AverageTimeSec
	}
	if expectedTotal > 0 && actualTotal > 0 {
		if actualTotal <= expectedTotal {
			score += 10
		} else {
			score += 10 * expectedTotal / actualTotal
		}
	}

	return int(math.Round(math.Max(0, math.Min(100, score))))
}
