package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/models"
)

func (api *RestAPI) byConditionHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	queries := api.TrialManager.TrialsDB.Queries

	ctRows, err := queries.TopConditions(ctx, filter, topN)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	euRows, err := queries.EudractTopConditions(ctx, filter, topN)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, models.ConditionAggregation{
		ClinicalTrialsConditions: orderedCounts(ctRows),
		EudractConditions:        orderedCounts(euRows),
	})
}
