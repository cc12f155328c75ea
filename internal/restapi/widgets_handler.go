package restapi

import (
	"net/http"

	"cohort.clinicaltrials.dev/internal/widgets"
)

func (api *RestAPI) widgetsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, r, widgets.Catalog)
}
