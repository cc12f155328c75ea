// Package widgets holds the fixed catalog of dashboard widgets.
package widgets

import "cohort.clinicaltrials.dev/internal/models"

// Catalog lists every widget a dashboard can place, in display order. IDs
// are stable; saved dashboards reference them.
var Catalog = []models.Widget{
	models.NewWidget("totals", "Total Trials", models.ChartStat, "/aggregations/totals"),
	models.NewWidget("conditions_bar", "Top Conditions", models.ChartBar, "/aggregations/by_condition"),
	models.NewWidget("conditions_pie", "Condition Share", models.ChartPie, "/aggregations/by_condition"),
	models.NewWidget("sponsors_bar", "Top Sponsors", models.ChartBar, "/aggregations/by_sponsor"),
	models.NewWidget("status_bar", "Trials by Status", models.ChartBar, "/aggregations/by_status"),
	models.NewWidget("phase_pie", "Trials by Phase", models.ChartPie, "/aggregations/by_phase"),
	models.NewWidget("enrollment_region_pie", "Enrollment by Region", models.ChartPie, "/aggregations/enrollment_by_region"),
	models.NewWidget("enrollment_stats", "Enrollment Statistics", models.ChartStat, "/aggregations/enrollment_stats"),
	models.NewWidget("trials_over_time", "Trials Over Time", models.ChartLine, "/aggregations/trials_over_time"),
}

// DefaultIDs returns the widget IDs a fresh dashboard starts with: the full
// catalog in display order.
func DefaultIDs() []string {
	ids := make([]string, 0, len(Catalog))
	for _, widget := range Catalog {
		ids = append(ids, widget.ID)
	}
	return ids
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (models.Widget, bool) {
	for _, widget := range Catalog {
		if widget.ID == id {
			return widget, true
		}
	}
	return models.Widget{}, false
}

// IsKnown reports whether id names a catalog widget.
func IsKnown(id string) bool {
	_, ok := Lookup(id)
	return ok
}
