package webui

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"cohort.clinicaltrials.dev/internal/widgets"
)

//go:embed debug_index.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "status":
		summary, err := webUI.TrialManager.StatusSummary(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = summary
		title = "Trial Registry - Service Status"
	case "config":
		data = webUI.TrialsConfig
		title = "Trial Registry - Manager Config"
	case "tables":
		counts, err := webUI.TrialManager.TrialsDB.TableCounts(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = counts
		title = "Trial Registry - Table Counts"
	case "snapshot":
		snapshot, err := webUI.TrialManager.ClinicalTrialsSnapshot(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var payload interface{}
		if err := json.Unmarshal(snapshot.Data, &payload); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = map[string]interface{}{
			"last_updated": snapshot.LastUpdated,
			"data":         payload,
		}
		title = "Trial Registry - ClinicalTrials.gov Snapshot"
	case "eudract":
		records, err := webUI.TrialManager.EudractRecords()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data = records
		title = "Trial Registry - EudraCT Records"
	case "widgets":
		data = widgets.Catalog
		title = "Dashboard Widgets - Catalog"
	default:
		data = map[string]string{
			"error": "Please use one of the following: status, config, tables, snapshot, eudract, widgets.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
