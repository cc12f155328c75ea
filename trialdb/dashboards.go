package trialdb

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a dashboard does not exist.
	ErrNotFound = errors.New("dashboard not found")
	// ErrWidgetExists is returned when a widget is already placed on a dashboard.
	ErrWidgetExists = errors.New("widget already on dashboard")
	// ErrWidgetNotFound is returned when a widget is not placed on a dashboard.
	ErrWidgetNotFound = errors.New("widget not on dashboard")
)

// DashboardRow is one dashboards table row
type DashboardRow struct {
	ID        string // id
	Name      string // name
	CreatedAt int64  // created_at (unix milliseconds)
	UpdatedAt int64  // updated_at (unix milliseconds)
}

func (d DashboardRow) CreatedAtTime() time.Time { return fromMillis(d.CreatedAt) }
func (d DashboardRow) UpdatedAtTime() time.Time { return fromMillis(d.UpdatedAt) }

// DashboardSummaryRow is a dashboards row joined with its widget count
type DashboardSummaryRow struct {
	ID          string // id
	Name        string // name
	CreatedAt   int64  // created_at (unix milliseconds)
	UpdatedAt   int64  // updated_at (unix milliseconds)
	WidgetCount int64  // widget_count
}

func (d DashboardSummaryRow) CreatedAtTime() time.Time { return fromMillis(d.CreatedAt) }
func (d DashboardSummaryRow) UpdatedAtTime() time.Time { return fromMillis(d.UpdatedAt) }

// DashboardWidgetRow is one widget placement on a dashboard
type DashboardWidgetRow struct {
	DashboardID string // dashboard_id
	WidgetID    string // widget_id
	Position    int64  // position (0-based, contiguous per dashboard)
}

// DashboardFiltersRow is the saved filter state of a dashboard
type DashboardFiltersRow struct {
	DashboardID string // dashboard_id
	Region      string // region
	Conditions  string // conditions (JSON array)
	StartDate   string // start_date
	EndDate     string // end_date
}

// DashboardDetail bundles a dashboard with its widget placements and filters.
type DashboardDetail struct {
	Dashboard DashboardRow
	Widgets   []DashboardWidgetRow
	Filters   DashboardFiltersRow
}

func (q *Queries) GetDashboardRow(ctx context.Context, id string) (DashboardRow, error) {
	var d DashboardRow
	err := q.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM dashboards WHERE id = ?", id).
		Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

const listDashboardSummaries = `
SELECT d.id, d.name, d.created_at, d.updated_at, COUNT(w.widget_id) AS widget_count
FROM dashboards d
LEFT JOIN dashboard_widgets w ON w.dashboard_id = d.id
GROUP BY d.id
ORDER BY d.created_at ASC, d.id ASC`

// ListDashboardSummaries returns every dashboard with its widget count,
// oldest first.
func (q *Queries) ListDashboardSummaries(ctx context.Context) ([]DashboardSummaryRow, error) {
	rows, err := q.db.QueryContext(ctx, listDashboardSummaries)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var summaries []DashboardSummaryRow
	for rows.Next() {
		var s DashboardSummaryRow
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt, &s.WidgetCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ListDashboardWidgetRows returns the widget placements of a dashboard in
// position order.
func (q *Queries) ListDashboardWidgetRows(ctx context.Context, dashboardID string) ([]DashboardWidgetRow, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT dashboard_id, widget_id, position FROM dashboard_widgets WHERE dashboard_id = ? ORDER BY position ASC",
		dashboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var widgets []DashboardWidgetRow
	for rows.Next() {
		var w DashboardWidgetRow
		if err := rows.Scan(&w.DashboardID, &w.WidgetID, &w.Position); err != nil {
			return nil, err
		}
		widgets = append(widgets, w)
	}
	return widgets, rows.Err()
}

func (q *Queries) GetDashboardFiltersRow(ctx context.Context, dashboardID string) (DashboardFiltersRow, error) {
	var f DashboardFiltersRow
	err := q.db.QueryRowContext(ctx,
		"SELECT dashboard_id, region, conditions, start_date, end_date FROM dashboard_filters WHERE dashboard_id = ?",
		dashboardID).
		Scan(&f.DashboardID, &f.Region, &f.Conditions, &f.StartDate, &f.EndDate)
	return f, err
}

// GetDashboardDetail loads a dashboard with its widgets and filters. Missing
// dashboards yield ErrNotFound.
func (c *Client) GetDashboardDetail(ctx context.Context, id string) (DashboardDetail, error) {
	dashboard, err := c.Queries.GetDashboardRow(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return DashboardDetail{}, ErrNotFound
	}
	if err != nil {
		return DashboardDetail{}, err
	}

	widgets, err := c.Queries.ListDashboardWidgetRows(ctx, id)
	if err != nil {
		return DashboardDetail{}, err
	}

	filters, err := c.Queries.GetDashboardFiltersRow(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		filters = DashboardFiltersRow{DashboardID: id, Conditions: "[]"}
	} else if err != nil {
		return DashboardDetail{}, err
	}

	return DashboardDetail{Dashboard: dashboard, Widgets: widgets, Filters: filters}, nil
}

// CreateDashboard inserts a dashboard with empty filters and the given
// widgets placed at positions 0..n-1 in order.
func (c *Client) CreateDashboard(ctx context.Context, id, name string, widgetIDs []string) (DashboardRow, error) {
	ms := toMillis(time.Now().UTC())

	tx, err := c.DB.Begin()
	if err != nil {
		return DashboardRow{}, err
	}
	defer tx.Rollback() // nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO dashboards (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		id, name, ms, ms); err != nil {
		return DashboardRow{}, err
	}
	for position, widgetID := range widgetIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO dashboard_widgets (dashboard_id, widget_id, position) VALUES (?, ?, ?)",
			id, widgetID, position); err != nil {
			return DashboardRow{}, err
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO dashboard_filters (dashboard_id) VALUES (?)", id); err != nil {
		return DashboardRow{}, err
	}
	if err := tx.Commit(); err != nil {
		return DashboardRow{}, err
	}

	return DashboardRow{ID: id, Name: name, CreatedAt: ms, UpdatedAt: ms}, nil
}

// RenameDashboard updates a dashboard's name.
func (c *Client) RenameDashboard(ctx context.Context, id, name string) error {
	res, err := c.DB.ExecContext(ctx,
		"UPDATE dashboards SET name = ?, updated_at = ? WHERE id = ?",
		name, toMillis(time.Now().UTC()), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDashboard removes a dashboard along with its widgets and filters.
func (c *Client) DeleteDashboard(ctx context.Context, id string) error {
	res, err := c.DB.ExecContext(ctx, "DELETE FROM dashboards WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddDashboardWidget places a widget at the end of a dashboard and returns
// its position.
func (c *Client) AddDashboardWidget(ctx context.Context, dashboardID, widgetID string) (int64, error) {
	tx, err := c.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // nolint:errcheck

	if err := requireDashboard(ctx, tx, dashboardID); err != nil {
		return 0, err
	}

	var placed int64
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM dashboard_widgets WHERE dashboard_id = ? AND widget_id = ?",
		dashboardID, widgetID).Scan(&placed)
	if err != nil {
		return 0, err
	}
	if placed > 0 {
		return 0, ErrWidgetExists
	}

	var position int64
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM dashboard_widgets WHERE dashboard_id = ?",
		dashboardID).Scan(&position)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO dashboard_widgets (dashboard_id, widget_id, position) VALUES (?, ?, ?)",
		dashboardID, widgetID, position); err != nil {
		return 0, err
	}
	if err := touchDashboard(ctx, tx, dashboardID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return position, nil
}

// RemoveDashboardWidget removes a widget placement and closes the gap so the
// remaining positions stay contiguous.
func (c *Client) RemoveDashboardWidget(ctx context.Context, dashboardID, widgetID string) error {
	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	if err := requireDashboard(ctx, tx, dashboardID); err != nil {
		return err
	}

	var position int64
	err = tx.QueryRowContext(ctx,
		"SELECT position FROM dashboard_widgets WHERE dashboard_id = ? AND widget_id = ?",
		dashboardID, widgetID).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrWidgetNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM dashboard_widgets WHERE dashboard_id = ? AND widget_id = ?",
		dashboardID, widgetID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE dashboard_widgets SET position = position - 1 WHERE dashboard_id = ? AND position > ?",
		dashboardID, position); err != nil {
		return err
	}
	if err := touchDashboard(ctx, tx, dashboardID); err != nil {
		return err
	}
	return tx.Commit()
}

// MoveDashboardWidget moves a widget to the given position, clamped to the
// valid range, shifting the widgets in between. It returns the position the
// widget ended up at.
func (c *Client) MoveDashboardWidget(ctx context.Context, dashboardID, widgetID string, position int64) (int64, error) {
	tx, err := c.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // nolint:errcheck

	if err := requireDashboard(ctx, tx, dashboardID); err != nil {
		return 0, err
	}

	// Drain the current order before issuing writes on the same transaction.
	rows, err := tx.QueryContext(ctx,
		"SELECT widget_id FROM dashboard_widgets WHERE dashboard_id = ? ORDER BY position ASC",
		dashboardID)
	if err != nil {
		return 0, err
	}
	var order []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close() // nolint:errcheck
			return 0, err
		}
		order = append(order, id)
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	from := -1
	for i, id := range order {
		if id == widgetID {
			from = i
			break
		}
	}
	if from == -1 {
		return 0, ErrWidgetNotFound
	}

	to := int(position)
	if to < 0 {
		to = 0
	}
	if to > len(order)-1 {
		to = len(order) - 1
	}

	moved := order[from]
	order = append(order[:from], order[from+1:]...)
	reordered := make([]string, 0, len(order)+1)
	reordered = append(reordered, order[:to]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, order[to:]...)

	for i, id := range reordered {
		if _, err := tx.ExecContext(ctx,
			"UPDATE dashboard_widgets SET position = ? WHERE dashboard_id = ? AND widget_id = ?",
			int64(i), dashboardID, id); err != nil {
			return 0, err
		}
	}

	if err := touchDashboard(ctx, tx, dashboardID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(to), nil
}

// PutDashboardFilters replaces a dashboard's saved filter state.
func (c *Client) PutDashboardFilters(ctx context.Context, filters DashboardFiltersRow) error {
	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	if err := requireDashboard(ctx, tx, filters.DashboardID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO dashboard_filters (dashboard_id, region, conditions, start_date, end_date) VALUES (?, ?, ?, ?, ?)",
		filters.DashboardID, filters.Region, filters.Conditions, filters.StartDate, filters.EndDate); err != nil {
		return err
	}
	if err := touchDashboard(ctx, tx, filters.DashboardID); err != nil {
		return err
	}
	return tx.Commit()
}

func requireDashboard(ctx context.Context, tx *sql.Tx, id string) error {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM dashboards WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func touchDashboard(ctx context.Context, tx *sql.Tx, id string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE dashboards SET updated_at = ? WHERE id = ?",
		toMillis(time.Now().UTC()), id)
	return err
}
