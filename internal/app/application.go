package app

import (
	"log/slog"

	"cohort.clinicaltrials.dev/internal/appconf"
	"cohort.clinicaltrials.dev/internal/trials"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config       appconf.Config
	TrialsConfig trials.Config
	Logger       *slog.Logger
	TrialManager *trials.Manager
}
