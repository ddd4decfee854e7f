package domain

import "time"

// JourneyStep is one node of a static journey map.
type JourneyStep struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Path             string   `json:"path" yaml:"path"`
	ExpectedDuration int      `json:"expectedDuration" yaml:"expected_duration"` // seconds
	ExitPoints       []string `json:"exitPoints" yaml:"exit_points"`
	NextSteps        []string `json:"nextSteps" yaml:"next_steps"`
}

// ConversionGoal names an outcome a journey is designed to produce.
type ConversionGoal struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// JourneyMap is read-only reference configuration describing an ordered
// funnel and its conversion goals.
type JourneyMap struct {
	ID    string           `json:"id" yaml:"id"`
	Name  string           `json:"name" yaml:"name"`
	Steps []JourneyStep    `json:"steps" yaml:"steps"`
	Goals []ConversionGoal `json:"goals" yaml:"goals"`
}

// TerminalStepID returns the id of the last step, the synthetic end of the
// funnel. Sessions exiting there are completions, not drop-offs.
func (m JourneyMap) TerminalStepID() string {
	if len(m.Steps) == 0 {
		return ""
	}
	return m.Steps[len(m.Steps)-1].ID
}

// UserSession is one recorded visit through a journey, produced by the
// session-tracking system.
type UserSession struct {
	SessionID               string    `json:"sessionId"`
	JourneyID               string    `json:"journeyId"`
	CurrentStep             string    `json:"currentStep"`
	StartTime               time.Time `json:"startTime"`
	LastActivity            time.Time `json:"lastActivity"`
	CompletedSteps          []string  `json:"completedSteps"`
	ExitPoint               string    `json:"exitPoint,omitempty"`
	ConversionGoalsAchieved []string  `json:"conversionGoalsAchieved"`
}

// FrictionSeverity tiers a friction finding.
type FrictionSeverity string

const (
	SeverityLow      FrictionSeverity = "low"
	SeverityMedium   FrictionSeverity = "medium"
	SeverityHigh     FrictionSeverity = "high"
	SeverityCritical FrictionSeverity = "critical"
)

// FrictionType names the signal that produced a friction finding.
type FrictionType string

const (
	FrictionHighExitRate    FrictionType = "high_exit_rate"
	FrictionLongTimeSpent   FrictionType = "long_time_spent"
	FrictionFormAbandonment FrictionType = "form_abandonment"
)

// FrictionPoint is one detected problem step. Impact is a ranking score only;
// it is deliberately not normalized across types.
type FrictionPoint struct {
	StepID   string           `json:"stepId"`
	StepName string           `json:"stepName"`
	Type     FrictionType     `json:"type"`
	Severity FrictionSeverity `json:"severity"`
	Impact   float64          `json:"impact"`
	Detail   string           `json:"detail"`
}

// StepMetrics is the per-step aggregate inside JourneyMetrics.
type StepMetrics struct {
	StepID         string  `json:"stepId"`
	Views          int     `json:"views"`
	Exits          int     `json:"exits"`
	ExitRate       float64 `json:"exitRate"`
	AverageTimeSec float64 `json:"averageTimeSec"`
}

// JourneyMetrics is the derived health report for one journey.
type JourneyMetrics struct {
	JourneyID         string          `json:"journeyId"`
	TotalSessions     int             `json:"totalSessions"`
	CompletedSessions int             `json:"completedSessions"`
	ConversionRate    float64         `json:"conversionRate"`
	GoalCounts        map[string]int  `json:"goalCounts"`
	Steps             []StepMetrics   `json:"steps"`
	FrictionPoints    []FrictionPoint `json:"frictionPoints"`
	OptimizationScore int             `json:"optimizationScore"`
}
