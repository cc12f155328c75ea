package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"cohort.clinicaltrials.dev/internal/models"
	"cohort.clinicaltrials.dev/internal/utils"
	"cohort.clinicaltrials.dev/internal/widgets"
	"cohort.clinicaltrials.dev/trialdb"
)

// dashboardModel maps a stored dashboard to its wire shape. Placements whose
// widget has left the catalog are dropped rather than failing the dashboard.
func dashboardModel(detail trialdb.DashboardDetail) models.Dashboard {
	placed := []models.DashboardWidget{}
	for _, row := range detail.Widgets {
		widget, ok := widgets.Lookup(row.WidgetID)
		if !ok {
			continue
		}
		placed = append(placed, widget.Placed(int(row.Position)))
	}

	conditions := trialdb.DecodeStringList(detail.Filters.Conditions)
	if conditions == nil {
		conditions = []string{}
	}

	return models.Dashboard{
		ID:      detail.Dashboard.ID,
		Name:    detail.Dashboard.Name,
		Widgets: placed,
		Filters: models.FilterState{
			Region:     detail.Filters.Region,
			Conditions: conditions,
			StartDate:  detail.Filters.StartDate,
			EndDate:    detail.Filters.EndDate,
		},
		CreatedAt: detail.Dashboard.CreatedAtTime(),
		UpdatedAt: detail.Dashboard.UpdatedAtTime(),
	}
}

// requireDashboardID extracts and validates the {id} path parameter, writing
// the validation response itself on failure.
func (api *RestAPI) requireDashboardID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return "", false
	}
	return id, true
}

func (api *RestAPI) listDashboardsHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := api.TrialManager.TrialsDB.Queries.ListDashboardSummaries(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	summaries := []models.DashboardSummary{}
	for _, row := range rows {
		summaries = append(summaries, models.DashboardSummary{
			ID:          row.ID,
			Name:        row.Name,
			WidgetCount: int(row.WidgetCount),
			CreatedAt:   row.CreatedAtTime(),
			UpdatedAt:   row.UpdatedAtTime(),
		})
	}
	api.sendJSON(w, r, summaries)
}

// createDashboardHandler creates a dashboard seeded with the default widget
// set, or an empty one when the body asks for it.
func (api *RestAPI) createDashboardHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string `json:"name"`
		Empty bool   `json:"empty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"must be valid JSON"}})
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		api.validationErrorResponse(w, r, map[string][]string{"name": {"name must not be blank"}})
		return
	}

	widgetIDs := widgets.DefaultIDs()
	if input.Empty {
		widgetIDs = nil
	}

	db := api.TrialManager.TrialsDB
	row, err := db.CreateDashboard(r.Context(), uuid.NewString(), input.Name, widgetIDs)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	detail, err := db.GetDashboardDetail(r.Context(), row.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSONStatus(w, r, http.StatusCreated, dashboardModel(detail))
}

func (api *RestAPI) getDashboardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.requireDashboardID(w, r)
	if !ok {
		return
	}

	detail, err := api.TrialManager.TrialsDB.GetDashboardDetail(r.Context(), id)
	if errors.Is(err, trialdb.ErrNotFound) {
		api.notFoundResponse(w, "Dashboard not found")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, dashboardModel(detail))
}

func (api *RestAPI) renameDashboardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.requireDashboardID(w, r)
	if !ok {
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"must be valid JSON"}})
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		api.validationErrorResponse(w, r, map[string][]string{"name": {"name must not be blank"}})
		return
	}

	db := api.TrialManager.TrialsDB
	err := db.RenameDashboard(r.Context(), id, input.Name)
	if errors.Is(err, trialdb.ErrNotFound) {
		api.notFoundResponse(w, "Dashboard not found")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	detail, err := db.GetDashboardDetail(r.Context(), id)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, dashboardModel(detail))
}

func (api *RestAPI) deleteDashboardHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.requireDashboardID(w, r)
	if !ok {
		return
	}

	err := api.TrialManager.TrialsDB.DeleteDashboard(r.Context(), id)
	if errors.Is(err, trialdb.ErrNotFound) {
		api.notFoundResponse(w, "Dashboard not found")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
