package trialdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widgetOrder(t *testing.T, client *Client, dashboardID string) []string {
	t.Helper()

	rows, err := client.Queries.ListDashboardWidgetRows(context.Background(), dashboardID)
	require.NoError(t, err)

	var order []string
	for i, row := range rows {
		assert.EqualValues(t, i, row.Position, "positions should stay contiguous from zero")
		order = append(order, row.WidgetID)
	}
	return order
}

func TestCreateAndGetDashboard(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	row, err := client.CreateDashboard(ctx, "dash-a", "Oncology Overview", nil)
	require.NoError(t, err, "CreateDashboard should succeed")
	assert.Equal(t, "dash-a", row.ID)
	assert.Equal(t, "Oncology Overview", row.Name)
	assert.True(t, row.CreatedAt > 0, "created_at should be set")
	assert.Equal(t, row.CreatedAt, row.UpdatedAt, "new dashboards start with equal timestamps")

	detail, err := client.GetDashboardDetail(ctx, "dash-a")
	require.NoError(t, err)
	assert.Equal(t, "Oncology Overview", detail.Dashboard.Name)
	assert.Empty(t, detail.Widgets, "new dashboards have no widgets")
	assert.Equal(t, "", detail.Filters.Region)
	assert.Equal(t, "[]", detail.Filters.Conditions, "filters start empty")
}

func TestCreateDashboardSeedsWidgets(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateDashboard(ctx, "dash-a", "Seeded", []string{"totals", "status_bar", "phase_pie"})
	require.NoError(t, err)

	assert.Equal(t, []string{"totals", "status_bar", "phase_pie"}, widgetOrder(t, client, "dash-a"))
}

func TestGetDashboardDetailNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.GetDashboardDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDashboardSummaries(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateDashboard(ctx, "dash-a", "First", nil)
	require.NoError(t, err)
	_, err = client.CreateDashboard(ctx, "dash-b", "Second", nil)
	require.NoError(t, err)

	_, err = client.AddDashboardWidget(ctx, "dash-b", "totals")
	require.NoError(t, err)
	_, err = client.AddDashboardWidget(ctx, "dash-b", "status_bar")
	require.NoError(t, err)

	summaries, err := client.Queries.ListDashboardSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "dash-a", summaries[0].ID, "summaries should list oldest first")
	assert.EqualValues(t, 0, summaries[0].WidgetCount)
	assert.Equal(t, "dash-b", summaries[1].ID)
	assert.EqualValues(t, 2, summaries[1].WidgetCount)
}

func TestRenameDashboard(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	row, err := client.CreateDashboard(ctx, "dash-a", "Old Name", nil)
	require.NoError(t, err)

	err = client.RenameDashboard(ctx, "dash-a", "New Name")
	require.NoError(t, err)

	detail, err := client.GetDashboardDetail(ctx, "dash-a")
	require.NoError(t, err)
	assert.Equal(t, "New Name", detail.Dashboard.Name)
	assert.True(t, detail.Dashboard.UpdatedAt >= row.CreatedAt, "rename should touch updated_at")

	err = client.RenameDashboard(ctx, "missing", "Whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDashboardCascades(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateDashboard(ctx, "dash-a", "Doomed", nil)
	require.NoError(t, err)
	_, err = client.AddDashboardWidget(ctx, "dash-a", "totals")
	require.NoError(t, err)
	err = client.PutDashboardFilters(ctx, DashboardFiltersRow{
		DashboardID: "dash-a",
		Region:      "EU",
		Conditions:  `["Melanoma"]`,
	})
	require.NoError(t, err)

	err = client.DeleteDashboard(ctx, "dash-a")
	require.NoError(t, err)

	_, err = client.GetDashboardDetail(ctx, "dash-a")
	assert.ErrorIs(t, err, ErrNotFound)

	// The cascade should have cleared the child tables too
	var widgets, filters int64
	err = client.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM dashboard_widgets WHERE dashboard_id = ?", "dash-a").Scan(&widgets)
	require.NoError(t, err)
	assert.EqualValues(t, 0, widgets)

	err = client.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM dashboard_filters WHERE dashboard_id = ?", "dash-a").Scan(&filters)
	require.NoError(t, err)
	assert.EqualValues(t, 0, filters)

	err = client.DeleteDashboard(ctx, "dash-a")
	assert.ErrorIs(t, err, ErrNotFound, "second delete should report not found")
}

func TestAddDashboardWidget(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateDashboard(ctx, "dash-a", "Widgets", nil)
	require.NoError(t, err)

	for i, widgetID := range []string{"totals", "status_bar", "phase_pie"} {
		position, err := client.AddDashboardWidget(ctx, "dash-a", widgetID)
		require.NoError(t, err)
		assert.EqualValues(t, i, position, "widgets should append at the end")
	}

	_, err = client.AddDashboardWidget(ctx, "dash-a", "totals")
	assert.ErrorIs(t, err, ErrWidgetExists, "a widget can only appear once per dashboard")

	_, err = client.AddDashboardWidget(ctx, "missing", "totals")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"totals", "status_bar", "phase_pie"}, widgetOrder(t, client, "dash-a"))
}

func TestRemoveDashboardWidgetCompacts(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateDashboard(ctx, "dash-a", "Widgets", nil)
	require.NoError(t, err)
	for _, widgetID := range []string{"totals", "status_bar", "phase_pie"} {
		_, err := client.AddDashboardWidget(ctx, "dash-a", widgetID)
		require.NoError(t, err)
	}

	err = client.RemoveDashboardWidget(ctx, "dash-a", "status_bar")
	require.NoError(t, err)
	assert.Equal(t, []string{"totals", "phase_pie"}, widgetOrder(t, client, "dash-a"))

	err = client.RemoveDashboardWidget(ctx, "dash-a", "status_bar")
	assert.ErrorIs(t, err, ErrWidgetNotFound)

	err = client.RemoveDashboardWidget(ctx, "missing", "totals")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveDashboardWidget(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateDashboard(ctx, "dash-a", "Widgets", nil)
	require.NoError(t, err)
	for _, widgetID := range []string{"totals", "status_bar", "phase_pie"} {
		_, err := client.AddDashboardWidget(ctx, "dash-a", widgetID)
		require.NoError(t, err)
	}

	// Move the last widget to the front
	position, err := client.MoveDashboardWidget(ctx, "dash-a", "phase_pie", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, position)
	assert.Equal(t, []string{"phase_pie", "totals", "status_bar"}, widgetOrder(t, client, "dash-a"))

	// Out-of-range targets clamp to the ends
	position, err = client.MoveDashboardWidget(ctx, "dash-a", "totals", 99)
	require.NoError(t, err)
	assert.EqualValues(t, 2, position)
	assert.Equal(t, []string{"phase_pie", "status_bar", "totals"}, widgetOrder(t, client, "dash-a"))

	position, err = client.MoveDashboardWidget(ctx, "dash-a", "status_bar", -5)
	require.NoError(t, err)
	assert.EqualValues(t, 0, position)
	assert.Equal(t, []string{"status_bar", "phase_pie", "totals"}, widgetOrder(t, client, "dash-a"))

	// Moving to the current position is a no-op
	position, err = client.MoveDashboardWidget(ctx, "dash-a", "status_bar", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, position)
	assert.Equal(t, []string{"status_bar", "phase_pie", "totals"}, widgetOrder(t, client, "dash-a"))

	_, err = client.MoveDashboardWidget(ctx, "dash-a", "missing-widget", 1)
	assert.ErrorIs(t, err, ErrWidgetNotFound)

	_, err = client.MoveDashboardWidget(ctx, "missing", "totals", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardFiltersRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.CreateDashboard(ctx, "dash-a", "Filtered", nil)
	require.NoError(t, err)

	err = client.PutDashboardFilters(ctx, DashboardFiltersRow{
		DashboardID: "dash-a",
		Region:      "US",
		Conditions:  `["Diabetes","Asthma"]`,
		StartDate:   "2020-01-01",
		EndDate:     "2023-12-31",
	})
	require.NoError(t, err)

	filters, err := client.Queries.GetDashboardFiltersRow(ctx, "dash-a")
	require.NoError(t, err)
	assert.Equal(t, "US", filters.Region)
	assert.Equal(t, `["Diabetes","Asthma"]`, filters.Conditions)
	assert.Equal(t, "2020-01-01", filters.StartDate)
	assert.Equal(t, "2023-12-31", filters.EndDate)

	// Replacing with an empty state clears the previous one
	err = client.PutDashboardFilters(ctx, DashboardFiltersRow{
		DashboardID: "dash-a",
		Conditions:  "[]",
	})
	require.NoError(t, err)

	filters, err = client.Queries.GetDashboardFiltersRow(ctx, "dash-a")
	require.NoError(t, err)
	assert.Equal(t, "", filters.Region)
	assert.Equal(t, "[]", filters.Conditions)

	err = client.PutDashboardFilters(ctx, DashboardFiltersRow{DashboardID: "missing", Conditions: "[]"})
	assert.ErrorIs(t, err, ErrNotFound)
}
