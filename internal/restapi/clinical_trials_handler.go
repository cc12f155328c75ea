package restapi

import "net/http"

// clinicalTrialsHandler serves the cached ClinicalTrials.gov payload. A
// missing snapshot triggers a synchronous fetch before responding.
func (api *RestAPI) clinicalTrialsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := api.TrialManager.ClinicalTrialsSnapshot(r.Context())
	if err != nil {
		api.Logger.Error("failed to load clinical trials snapshot", "error", err)
		api.sendDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	api.sendJSON(w, r, snapshot)
}
