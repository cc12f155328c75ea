package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"cohort.clinicaltrials.dev/internal/utils"
	"cohort.clinicaltrials.dev/internal/widgets"
	"cohort.clinicaltrials.dev/trialdb"
)

// widgetPlacement reports where a widget sits after an add or move.
type widgetPlacement struct {
	WidgetID string `json:"widget_id"`
	Position int64  `json:"position"`
}

// requireWidgetID extracts and validates the {widgetID} path parameter.
func (api *RestAPI) requireWidgetID(w http.ResponseWriter, r *http.Request) (string, bool) {
	widgetID := utils.ExtractIDFromParams(r, "widgetID")
	if err := utils.ValidateID(widgetID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"widget_id": {err.Error()}})
		return "", false
	}
	return widgetID, true
}

func (api *RestAPI) addDashboardWidgetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.requireDashboardID(w, r)
	if !ok {
		return
	}

	var input struct {
		WidgetID string `json:"widget_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"must be valid JSON"}})
		return
	}
	if !widgets.IsKnown(input.WidgetID) {
		api.validationErrorResponse(w, r, map[string][]string{
			"widget_id": {fmt.Sprintf("unknown widget %q", input.WidgetID)},
		})
		return
	}

	position, err := api.TrialManager.TrialsDB.AddDashboardWidget(r.Context(), id, input.WidgetID)
	switch {
	case errors.Is(err, trialdb.ErrNotFound):
		api.notFoundResponse(w, "Dashboard not found")
	case errors.Is(err, trialdb.ErrWidgetExists):
		api.sendDetail(w, http.StatusConflict, "Widget already on dashboard")
	case err != nil:
		api.serverErrorResponse(w, r, err)
	default:
		api.sendJSONStatus(w, r, http.StatusCreated, widgetPlacement{WidgetID: input.WidgetID, Position: position})
	}
}

func (api *RestAPI) removeDashboardWidgetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.requireDashboardID(w, r)
	if !ok {
		return
	}
	widgetID, ok := api.requireWidgetID(w, r)
	if !ok {
		return
	}

	err := api.TrialManager.TrialsDB.RemoveDashboardWidget(r.Context(), id, widgetID)
	switch {
	case errors.Is(err, trialdb.ErrNotFound):
		api.notFoundResponse(w, "Dashboard not found")
	case errors.Is(err, trialdb.ErrWidgetNotFound):
		api.notFoundResponse(w, "Widget not on dashboard")
	case err != nil:
		api.serverErrorResponse(w, r, err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// moveDashboardWidgetHandler moves a widget to the requested slot. The
// store clamps the target into range, so the response reports the position
// the widget actually landed on.
func (api *RestAPI) moveDashboardWidgetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.requireDashboardID(w, r)
	if !ok {
		return
	}
	widgetID, ok := api.requireWidgetID(w, r)
	if !ok {
		return
	}

	var input struct {
		Position *int64 `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"must be valid JSON"}})
		return
	}
	if input.Position == nil {
		api.validationErrorResponse(w, r, map[string][]string{"position": {"position is required"}})
		return
	}

	position, err := api.TrialManager.TrialsDB.MoveDashboardWidget(r.Context(), id, widgetID, *input.Position)
	switch {
	case errors.Is(err, trialdb.ErrNotFound):
		api.notFoundResponse(w, "Dashboard not found")
	case errors.Is(err, trialdb.ErrWidgetNotFound):
		api.notFoundResponse(w, "Widget not on dashboard")
	case err != nil:
		api.serverErrorResponse(w, r, err)
	default:
		api.sendJSON(w, r, widgetPlacement{WidgetID: widgetID, Position: position})
	}
}
