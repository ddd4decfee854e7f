package journey

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"studio-backend/internal/domain"
)

// mapsDocument is the YAML shape the journey maps are configured in.
type mapsDocument struct {
	Journeys []domain.JourneyMap `yaml:"journeys"`
}

// ParseMaps decodes journey maps from YAML and rejects maps an Analyzer could
// not be built from.
func ParseMaps(data []byte) ([]domain.JourneyMap, error) {
	var doc mapsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("journey: parse maps: %w", err)
	}
	if len(doc.Journeys) == 0 {
		return nil, fmt.Errorf("journey: parse maps: no journeys defined")
	}
	for _, m := range doc.Journeys {
		if m.ID == "" {
			return nil, fmt.Errorf("journey: parse maps: journey with empty id")
		}
		if len(m.Steps) == 0 {
			return nil, fmt.Errorf("journey: parse maps: journey %q has no steps", m.ID)
		}
	}
	return doc.Journeys, nil
}

// DefaultMaps returns the two funnels the site ships with. Deployments
// override them with the journey_maps parameter.
func DefaultMaps() []domain.JourneyMap {
	return []domain.JourneyMap{
		{
			ID:   "lesson-inquiry",
			Name: "Lesson inquiry funnel",
			Steps: []domain.JourneyStep{
				{ID: "landing", Name: "Landing", Path: "/", ExpectedDuration: 30, NextSteps: []string{"services"}},
				{ID: "services", Name: "Services", Path: "/services", ExpectedDuration: 60, NextSteps: []string{"pricing"}},
				{ID: "pricing", Name: "Pricing", Path: "/pricing", ExpectedDuration: 45, NextSteps: []string{"contact-form"}},
				{ID: "contact-form", Name: "Contact form", Path: "/contact", ExpectedDuration: 90, NextSteps: []string{"inquiry-sent"}},
				{ID: "inquiry-sent", Name: "Inquiry sent", Path: "/contact/thanks", ExpectedDuration: 15},
			},
			Goals: []domain.ConversionGoal{
				{ID: "inquiry-submitted", Name: "Inquiry submitted", Value: 10},
				{ID: "trial-lesson-booked", Name: "Trial lesson booked", Value: 50},
			},
		},
		{
			ID:   "performance-booking",
			Name: "Performance booking funnel",
			Steps: []domain.JourneyStep{
				{ID: "landing", Name: "Landing", Path: "/", ExpectedDuration: 30, NextSteps: []string{"performance"}},
				{ID: "performance", Name: "Performance page", Path: "/performance", ExpectedDuration: 90, NextSteps: []string{"estimate-form"}},
				{ID: "estimate-form", Name: "Estimate form", Path: "/performance/estimate", ExpectedDuration: 120, NextSteps: []string{"estimate-sent"}},
				{ID: "estimate-sent", Name: "Estimate sent", Path: "/performance/thanks", ExpectedDuration: 15},
			},
			Goals: []domain.ConversionGoal{
				{ID: "estimate-requested", Name: "Estimate requested", Value: 25},
			},
		},
	}
}
