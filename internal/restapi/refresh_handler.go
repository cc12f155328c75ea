package restapi

import "net/http"

func (api *RestAPI) refreshHandler(w http.ResponseWriter, r *http.Request) {
	result, err := api.TrialManager.RefreshNow(r.Context())
	if err != nil {
		api.Logger.Error("manual refresh failed", "error", err)
		api.sendDetail(w, http.StatusInternalServerError, "Failed to refresh data: "+err.Error())
		return
	}

	api.sendJSON(w, r, result)
}
