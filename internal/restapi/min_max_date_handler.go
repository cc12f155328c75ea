package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/models"
)

func (api *RestAPI) minMaxDateHandler(w http.ResponseWriter, r *http.Request) {
	bounds, err := api.TrialManager.TrialsDB.Queries.DateBounds(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	var payload models.DateBounds
	if bounds.MinDate.Valid && bounds.MinDate.String != "" {
		payload.MinDate = &bounds.MinDate.String
	}
	if bounds.MaxDate.Valid && bounds.MaxDate.String != "" {
		payload.MaxDate = &bounds.MaxDate.String
	}

	api.sendJSON(w, r, payload)
}
