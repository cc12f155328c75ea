package models

// ChartKind identifies how a widget renders its series.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
	ChartStat ChartKind = "stat"
)

// Widget is a catalog entry: a chart definition bound to the aggregation
// endpoint that feeds it.
type Widget struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Chart    ChartKind `json:"chart"`
	Endpoint string    `json:"endpoint"`
}

// NewWidget creates a catalog widget definition.
func NewWidget(id, title string, chart ChartKind, endpoint string) Widget {
	return Widget{
		ID:       id,
		Title:    title,
		Chart:    chart,
		Endpoint: endpoint,
	}
}

// Placed returns the widget as placed on a dashboard at the given position.
func (w Widget) Placed(position int) DashboardWidget {
	return DashboardWidget{
		ID:       w.ID,
		Title:    w.Title,
		Chart:    w.Chart,
		Endpoint: w.Endpoint,
		Position: position,
	}
}
