package webui

import (
	"cohort.clinicaltrials.dev/internal/app"
)

type WebUI struct {
	*app.Application
}

// NewWebUI creates a new WebUI instance serving the debug pages
func NewWebUI(app *app.Application) *WebUI {
	return &WebUI{
		Application: app,
	}
}
