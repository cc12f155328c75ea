package models

import "time"

// Dashboard is a saved chart layout: an ordered set of widgets plus the
// filter state applied to every widget on it.
type Dashboard struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Widgets   []DashboardWidget `json:"widgets"`
	Filters   FilterState       `json:"filters"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// DashboardWidget is a catalog widget placed on a dashboard. Position is the
// 0-based slot in the layout; positions on a dashboard are unique and
// contiguous.
type DashboardWidget struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Chart    ChartKind `json:"chart"`
	Endpoint string    `json:"endpoint"`
	Position int       `json:"position"`
}

// DashboardSummary is the list-view shape for a dashboard.
type DashboardSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	WidgetCount int       `json:"widget_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FilterState is the per-dashboard filter selection. The zero-ish state
// (empty region, no conditions, no dates) means "show everything".
type FilterState struct {
	Region     string   `json:"region"`
	Conditions []string `json:"conditions"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
}

// NewFilterState returns an unfiltered state with a non-nil conditions slice
// so it serializes as [] rather than null.
func NewFilterState() FilterState {
	return FilterState{Conditions: []string{}}
}
