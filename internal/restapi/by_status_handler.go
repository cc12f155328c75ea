package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/models"
)

func (api *RestAPI) byStatusHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	rows, err := api.TrialManager.TrialsDB.Queries.CountsByStatus(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, models.StatusAggregation{
		ClinicalTrialsStatuses: orderedCounts(rows),
	})
}
