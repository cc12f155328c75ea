package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/models"
)

func (api *RestAPI) enrollmentStatsHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	queries := api.TrialManager.TrialsDB.Queries

	ctValues, err := queries.EnrollmentValues(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	ctStats, err := enrollmentStats(ctValues)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	euValues, err := queries.EudractEnrollmentValues(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	euStats, err := enrollmentStats(euValues)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, models.EnrollmentStatsAggregation{
		ClinicalTrialsEnrollmentStats: ctStats,
		EudractEnrollmentStats:        euStats,
	})
}
