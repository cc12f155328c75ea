package restapi

import (
	"net/http"
	"net/http/pprof"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers every API endpoint on the router. Each route runs
// through the rate limiter and the API key check.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	wrap := func(h handlerFunc) http.Handler {
		return api.rateLimiter(validateAPIKey(api, h))
	}

	router.Handler(http.MethodGet, "/clinicaltrials", wrap(api.clinicalTrialsHandler))
	router.Handler(http.MethodGet, "/eudract", wrap(api.eudractHandler))
	router.Handler(http.MethodPost, "/refresh", wrap(api.refreshHandler))

	router.Handler(http.MethodGet, "/aggregations/totals", wrap(api.totalsHandler))
	router.Handler(http.MethodGet, "/aggregations/by_condition", wrap(api.byConditionHandler))
	router.Handler(http.MethodGet, "/aggregations/by_sponsor", wrap(api.bySponsorHandler))
	router.Handler(http.MethodGet, "/aggregations/by_status", wrap(api.byStatusHandler))
	router.Handler(http.MethodGet, "/aggregations/by_phase", wrap(api.byPhaseHandler))
	router.Handler(http.MethodGet, "/aggregations/enrollment_by_region", wrap(api.enrollmentByRegionHandler))
	router.Handler(http.MethodGet, "/aggregations/enrollment_stats", wrap(api.enrollmentStatsHandler))
	router.Handler(http.MethodGet, "/aggregations/trials_over_time", wrap(api.trialsOverTimeHandler))

	router.Handler(http.MethodGet, "/conditions", wrap(api.conditionsHandler))
	router.Handler(http.MethodGet, "/min_max_date", wrap(api.minMaxDateHandler))
	router.Handler(http.MethodGet, "/status", wrap(api.statusHandler))
	router.Handler(http.MethodGet, "/export/clinicaltrials.xlsx", wrap(api.exportClinicalTrialsHandler))
	router.Handler(http.MethodGet, "/widgets", wrap(api.widgetsHandler))

	router.Handler(http.MethodGet, "/dashboards", wrap(api.listDashboardsHandler))
	router.Handler(http.MethodPost, "/dashboards", wrap(api.createDashboardHandler))
	router.Handler(http.MethodGet, "/dashboards/:id", wrap(api.getDashboardHandler))
	router.Handler(http.MethodPatch, "/dashboards/:id", wrap(api.renameDashboardHandler))
	router.Handler(http.MethodDelete, "/dashboards/:id", wrap(api.deleteDashboardHandler))
	router.Handler(http.MethodPost, "/dashboards/:id/widgets", wrap(api.addDashboardWidgetHandler))
	router.Handler(http.MethodDelete, "/dashboards/:id/widgets/:widgetID", wrap(api.removeDashboardWidgetHandler))
	router.Handler(http.MethodPut, "/dashboards/:id/widgets/:widgetID/position", wrap(api.moveDashboardWidgetHandler))
	router.Handler(http.MethodGet, "/dashboards/:id/filters", wrap(api.getDashboardFiltersHandler))
	router.Handler(http.MethodPut, "/dashboards/:id/filters", wrap(api.putDashboardFiltersHandler))

	registerPprofHandlers(router)
}

func registerPprofHandlers(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug/pprof/*profile", pprofHandler)
}

// pprofHandler dispatches under a single wildcard because the router rejects
// static siblings of a catch-all route.
func pprofHandler(w http.ResponseWriter, r *http.Request) {
	switch httprouter.ParamsFromContext(r.Context()).ByName("profile") {
	case "/cmdline":
		pprof.Cmdline(w, r)
	case "/profile":
		pprof.Profile(w, r)
	case "/symbol":
		pprof.Symbol(w, r)
	case "/trace":
		pprof.Trace(w, r)
	default:
		pprof.Index(w, r)
	}
}
