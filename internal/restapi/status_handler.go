package restapi

import "net/http"

func (api *RestAPI) statusHandler(w http.ResponseWriter, r *http.Request) {
	status, err := api.TrialManager.StatusSummary(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendJSON(w, r, status)
}
