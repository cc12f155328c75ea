package trials

import (
	"time"

	"cohort.clinicaltrials.dev/internal/appconf"
)

// Config wires the trial data manager.
type Config struct {
	CTGovURL        string        // ClinicalTrials.gov v2 studies endpoint
	CTGovPageSize   int           // studies per fetch
	CTGovTimeout    time.Duration // upstream request timeout
	EudractPath     string        // path to the EudraCT register export
	DBPath          string        // SQLite database path
	SnapshotPath    string        // raw upstream snapshot path
	RefreshInterval time.Duration // periodic refresh cadence
	RetryInterval   time.Duration // delay before retrying a failed refresh
	Env             appconf.Environment
	Verbose         bool
}

func (config Config) refreshEnabled() bool {
	return config.RefreshInterval > 0
}
