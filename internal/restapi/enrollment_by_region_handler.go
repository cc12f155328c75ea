package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/models"
)

func (api *RestAPI) enrollmentByRegionHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	queries := api.TrialManager.TrialsDB.Queries

	ctRows, err := queries.EnrollmentByRegion(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	euRows, err := queries.EudractEnrollmentByRegion(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	// Regions with no matching trials keep their zero sum, so the payload
	// always carries every bucket.
	var payload models.EnrollmentByRegionAggregation
	for _, row := range ctRows {
		switch row.Value {
		case string(models.RegionUS):
			payload.ClinicalTrialsEnrollment.US = row.Count
		case string(models.RegionEU):
			payload.ClinicalTrialsEnrollment.EU = row.Count
		case string(models.RegionOthers):
			payload.ClinicalTrialsEnrollment.Others = row.Count
		}
	}
	for _, row := range euRows {
		switch row.Value {
		case string(models.RegionEU):
			payload.EudractEnrollment.EU = row.Count
		case string(models.RegionOthers):
			payload.EudractEnrollment.Others = row.Count
		}
	}

	api.sendJSON(w, r, payload)
}
