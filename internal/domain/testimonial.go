package domain

// Service identifies one of the three offerings on the site.
type Service string

const (
	ServicePerformance   Service = "performance"
	ServiceTeaching      Service = "teaching"
	ServiceCollaboration Service = "collaboration"
)

// Services lists every known service in display order.
var Services = []Service{ServicePerformance, ServiceTeaching, ServiceCollaboration}

// Testimonial is a single client review, produced by the content pipeline and
// consumed read-only here.
type Testimonial struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Text     string  `json:"text"`
	Rating   int     `json:"rating"` // 1..5
	Service  Service `json:"service"`
	Featured bool    `json:"featured"`
	Verified bool    `json:"verified"`
	Date     string  `json:"date,omitempty"`
}

// ServiceStats holds the aggregate for one service bucket.
type ServiceStats struct {
	Count         int     `json:"count"`
	Percentage    int     `json:"percentage"`
	AverageRating float64 `json:"averageRating"`
}

// TestimonialStats is the derived aggregate over a testimonial collection.
// Per-bucket percentages are rounded independently, so they may not sum to
// exactly 100.
type TestimonialStats struct {
	Total         int                      `json:"total"`
	AverageRating float64                  `json:"averageRating"`
	ByService     map[Service]ServiceStats `json:"byService"`
	Featured      int                      `json:"featured"`
	Verified      int                      `json:"verified"`
}
