package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/models"
)

func (api *RestAPI) trialsOverTimeHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	queries := api.TrialManager.TrialsDB.Queries

	ctRows, err := queries.MonthlyStartCounts(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	euRows, err := queries.EudractMonthlyStartCounts(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, models.TrialsOverTimeAggregation{
		ClinicalTrialsMonthly: orderedCounts(ctRows),
		EudractMonthly:        orderedCounts(euRows),
	})
}
