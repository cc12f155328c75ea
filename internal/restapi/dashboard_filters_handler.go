package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cohort.clinicaltrials.dev/internal/models"
	"cohort.clinicaltrials.dev/internal/utils"
	"cohort.clinicaltrials.dev/trialdb"
)

func (api *RestAPI) getDashboardFiltersHandler(w http.ResponseWriter, r *http.Request) {
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
	api.sendJSON(w, r, dashboardModel(detail).Filters)
}

// validateFilterState checks a saved filter state with the same rules as the
// filter query parameters. Region is stored in its lowercase filter form and
// dates in canonical YYYY-MM-DD form.
func validateFilterState(state models.FilterState) (models.FilterState, map[string][]string) {
	fieldErrors := make(map[string][]string)
	clean := models.NewFilterState()

	if state.Region != "" {
		if err := utils.ValidateRegion(state.Region); err != nil {
			fieldErrors["region"] = append(fieldErrors["region"], err.Error())
		} else {
			clean.Region = strings.ToLower(state.Region)
		}
	}

	for _, condition := range state.Conditions {
		if strings.TrimSpace(condition) == "" {
			fieldErrors["conditions"] = append(fieldErrors["conditions"], "condition must not be blank")
			continue
		}
		sanitized, err := utils.ValidateAndSanitizeQuery(condition)
		if err != nil {
			fieldErrors["conditions"] = append(fieldErrors["conditions"], err.Error())
			continue
		}
		clean.Conditions = append(clean.Conditions, sanitized)
	}

	if state.StartDate != "" {
		if err := utils.ValidateDate(state.StartDate); err != nil {
			fieldErrors["start_date"] = append(fieldErrors["start_date"], err.Error())
		} else {
			clean.StartDate = utils.NormalizeDate(state.StartDate)
		}
	}
	if state.EndDate != "" {
		if err := utils.ValidateDate(state.EndDate); err != nil {
			fieldErrors["end_date"] = append(fieldErrors["end_date"], err.Error())
		} else {
			clean.EndDate = utils.NormalizeDate(state.EndDate)
		}
	}

	if len(fieldErrors) > 0 {
		return models.FilterState{}, fieldErrors
	}
	return clean, nil
}

// putDashboardFiltersHandler replaces the dashboard's saved filter state and
// echoes the stored form back.
func (api *RestAPI) putDashboardFiltersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.requireDashboardID(w, r)
	if !ok {
		return
	}

	var state models.FilterState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"body": {"must be valid JSON"}})
		return
	}

	clean, fieldErrors := validateFilterState(state)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	err := api.TrialManager.TrialsDB.PutDashboardFilters(r.Context(), trialdb.DashboardFiltersRow{
		DashboardID: id,
		Region:      clean.Region,
		Conditions:  trialdb.EncodeStringList(clean.Conditions),
		StartDate:   clean.StartDate,
		EndDate:     clean.EndDate,
	})
	if errors.Is(err, trialdb.ErrNotFound) {
		api.notFoundResponse(w, "Dashboard not found")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, clean)
}
