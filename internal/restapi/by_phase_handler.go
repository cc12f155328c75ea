package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/models"
)

func (api *RestAPI) byPhaseHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	rows, err := api.TrialManager.TrialsDB.Queries.CountsByPhase(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, models.PhaseAggregation{
		ClinicalTrialsPhases: orderedCounts(rows),
	})
}
