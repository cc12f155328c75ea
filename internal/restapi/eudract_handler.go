package restapi

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"cohort.clinicaltrials.dev/internal/eudract"
	"cohort.clinicaltrials.dev/internal/models"
	"cohort.clinicaltrials.dev/internal/utils"
	"cohort.clinicaltrials.dev/trialdb"
)

// eudractHandler serves the register export, re-read on every request so a
// swapped file shows up immediately.
func (api *RestAPI) eudractHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	records, err := api.TrialManager.EudractRecords()
	if errors.Is(err, fs.ErrNotExist) {
		api.notFoundResponse(w, "EudraCT data file not found")
		return
	}
	if err != nil {
		api.Logger.Error("failed to load EudraCT data", "error", err)
		api.sendDetail(w, http.StatusInternalServerError, "Invalid EudraCT data format")
		return
	}

	api.sendJSON(w, r, filterEudractRecords(records, filter))
}

// filterEudractRecords applies the shared filter in memory, matching the SQL
// filter semantics: region from the trial protocol, case-insensitive
// condition match, and bounds on the normalized start date. Records without
// a parseable start date fail both bounds.
func filterEudractRecords(records []eudract.Record, filter trialdb.TrialFilter) []eudract.Record {
	conditions := make(map[string]bool, len(filter.Conditions))
	for _, condition := range filter.Conditions {
		conditions[strings.ToLower(condition)] = true
	}

	filtered := []eudract.Record{}
	for _, record := range records {
		if filter.Region != "" && string(models.ClassifyTrialProtocol(record.TrialProtocol)) != filter.Region {
			continue
		}
		if len(conditions) > 0 && !conditions[strings.ToLower(record.Condition)] {
			continue
		}
		norm := utils.NormalizeDate(record.StartDate)
		if filter.StartDate != "" && norm < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && (norm == "" || norm > filter.EndDate) {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}
