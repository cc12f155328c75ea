package restapi

import (
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []any{
	"NCT ID", "Title", "Status", "Sponsor", "Enrollment",
	"Conditions", "Locations", "Phases", "Region",
	"Start Date", "Completion Date",
}

// exportClinicalTrialsHandler streams the filtered registry studies as a
// spreadsheet download.
func (api *RestAPI) exportClinicalTrialsHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.requireTrialFilter(w, r)
	if !ok {
		return
	}

	trials, err := api.TrialManager.TrialsDB.Queries.ListClinicalTrials(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Clinical Trials"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	for i, trial := range trials {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		row := []any{
			trial.NctID,
			trial.Title,
			trial.Status,
			trial.Sponsor,
			trial.Enrollment,
			strings.Join(trial.ConditionList(), ", "),
			strings.Join(trial.LocationList(), ", "),
			strings.Join(trial.PhaseList(), ", "),
			trial.Region,
			trial.StartDate,
			trial.CompletionDate,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="clinicaltrials.xlsx"`)
	if err := f.Write(w); err != nil {
		// Headers are already out, so the most we can do is log.
		api.Logger.Error("failed to write spreadsheet response", "error", err)
	}
}
