package restapi

import (
	"net/http"
	"sort"
)

// conditionsHandler serves the sorted union of condition names across both
// sources. The dashboard uses it to populate the condition filter picker.
func (api *RestAPI) conditionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queries := api.TrialManager.TrialsDB.Queries

	ctConditions, err := queries.DistinctConditions(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	euConditions, err := queries.DistinctEudractConditions(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	seen := make(map[string]bool, len(ctConditions)+len(euConditions))
	merged := []string{}
	for _, condition := range ctConditions {
		if !seen[condition] {
			seen[condition] = true
			merged = append(merged, condition)
		}
	}
	for _, condition := range euConditions {
		if !seen[condition] {
			seen[condition] = true
			merged = append(merged, condition)
		}
	}
	sort.Strings(merged)

	api.sendJSON(w, r, merged)
}
