package restapi

import (
	"encoding/json"
	"net/http"
)

// invalidAPIKeyResponse sends a 401 Unauthorized detail for requests that
// fail the API key check.
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendDetail(w, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	api.sendDetail(w, http.StatusInternalServerError, "internal server error")
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, detail string) {
	api.sendDetail(w, http.StatusNotFound, detail)
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}
