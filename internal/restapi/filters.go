package restapi

import (
	"net/http"
	"strings"

	"cohort.clinicaltrials.dev/internal/models"
	"cohort.clinicaltrials.dev/internal/utils"
	"cohort.clinicaltrials.dev/trialdb"
)

// parseTrialFilter reads the shared filter query parameters: region,
// condition (repeatable), start_date and end_date. The second return holds
// per-field validation messages; a non-empty map means the request is
// invalid and the filter must not be used.
func parseTrialFilter(r *http.Request) (trialdb.TrialFilter, map[string][]string) {
	query := r.URL.Query()
	fieldErrors := make(map[string][]string)

	var filter trialdb.TrialFilter

	if value := query.Get("region"); value != "" {
		if err := utils.ValidateRegion(value); err != nil {
			fieldErrors["region"] = append(fieldErrors["region"], err.Error())
		} else if region, ok := models.RegionFromFilter(value); ok {
			filter.Region = string(region)
		}
	}

	for _, condition := range query["condition"] {
		if strings.TrimSpace(condition) == "" {
			fieldErrors["condition"] = append(fieldErrors["condition"], "condition must not be blank")
			continue
		}
		sanitized, err := utils.ValidateAndSanitizeQuery(condition)
		if err != nil {
			fieldErrors["condition"] = append(fieldErrors["condition"], err.Error())
			continue
		}
		filter.Conditions = append(filter.Conditions, sanitized)
	}

	filter.StartDate, fieldErrors = utils.ParseDateParam(query, "start_date", fieldErrors)
	filter.EndDate, fieldErrors = utils.ParseDateParam(query, "end_date", fieldErrors)

	if len(fieldErrors) > 0 {
		return trialdb.TrialFilter{}, fieldErrors
	}
	return filter, nil
}

// requireTrialFilter parses the filter parameters and writes the validation
// response itself. The bool reports whether the handler should proceed.
func (api *RestAPI) requireTrialFilter(w http.ResponseWriter, r *http.Request) (trialdb.TrialFilter, bool) {
	filter, fieldErrors := parseTrialFilter(r)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return trialdb.TrialFilter{}, false
	}
	return filter, true
}
