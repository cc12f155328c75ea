package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/models"
)

func (api *RestAPI) totalsHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	queries := api.TrialManager.TrialsDB.Queries

	ctTotal, err := queries.CountClinicalTrials(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	euTotal, err := queries.CountEudractTrials(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, models.TotalsAggregation{
		ClinicalTrialsTotal: ctTotal,
		EudractTotal:        euTotal,
	})
}
