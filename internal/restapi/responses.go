package restapi

import (
	"encoding/json"
	"net/http"
)

func (api *RestAPI) sendJSON(w http.ResponseWriter, r *http.Request, payload any) {
	setJSONResponseType(&w)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		api.Logger.Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}

// sendJSONStatus is sendJSON with an explicit status code.
func (api *RestAPI) sendJSONStatus(w http.ResponseWriter, r *http.Request, status int, payload any) {
	setJSONResponseType(&w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		api.Logger.Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}

// sendDetail writes an error payload in the {"detail": ...} shape the
// dashboard client expects.
func (api *RestAPI) sendDetail(w http.ResponseWriter, status int, detail string) {
	setJSONResponseType(&w)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"detail": detail}); err != nil {
		api.Logger.Error("failed to encode error response", "error", err)
	}
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
