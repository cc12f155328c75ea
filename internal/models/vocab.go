package models

// TrialStatus is the normalized recruitment status vocabulary served by the
// API. ClinicalTrials.gov reports these in SCREAMING_SNAKE form.
type TrialStatus string

const (
	StatusRecruiting          TrialStatus = "recruiting"
	StatusNotYetRecruiting    TrialStatus = "not_yet_recruiting"
	StatusEnrollingByInvite   TrialStatus = "enrolling_by_invitation"
	StatusActiveNotRecruiting TrialStatus = "active_not_recruiting"
	StatusCompleted           TrialStatus = "completed"
	StatusSuspended           TrialStatus = "suspended"
	StatusTerminated          TrialStatus = "terminated"
	StatusWithdrawn           TrialStatus = "withdrawn"
	StatusUnknown             TrialStatus = "unknown"
)

var statusByUpstream = map[string]TrialStatus{
	"RECRUITING":              StatusRecruiting,
	"NOT_YET_RECRUITING":      StatusNotYetRecruiting,
	"ENROLLING_BY_INVITATION": StatusEnrollingByInvite,
	"ACTIVE_NOT_RECRUITING":   StatusActiveNotRecruiting,
	"COMPLETED":               StatusCompleted,
	"SUSPENDED":               StatusSuspended,
	"TERMINATED":              StatusTerminated,
	"WITHDRAWN":               StatusWithdrawn,
}

// NormalizeStatus maps an upstream overallStatus value to the API vocabulary.
func NormalizeStatus(upstream string) TrialStatus {
	if s, ok := statusByUpstream[upstream]; ok {
		return s
	}
	return StatusUnknown
}

// Phase is the normalized trial phase vocabulary served by the API.
type Phase string

const (
	PhaseEarly1        Phase = "early_phase_1"
	Phase1             Phase = "phase_1"
	Phase2             Phase = "phase_2"
	Phase3             Phase = "phase_3"
	Phase4             Phase = "phase_4"
	PhaseNotApplicable Phase = "not_applicable"
)

var phaseByUpstream = map[string]Phase{
	"EARLY_PHASE1": PhaseEarly1,
	"PHASE1":       Phase1,
	"PHASE2":       Phase2,
	"PHASE3":       Phase3,
	"PHASE4":       Phase4,
	"NA":           PhaseNotApplicable,
}

// NormalizePhase maps an upstream phase value to the API vocabulary.
// Values the registry has not documented collapse into not_applicable.
func NormalizePhase(upstream string) Phase {
	if p, ok := phaseByUpstream[upstream]; ok {
		return p
	}
	return PhaseNotApplicable
}

// NormalizePhases maps a list of upstream phase values, dropping duplicates
// introduced by normalization.
func NormalizePhases(upstream []string) []Phase {
	seen := make(map[Phase]bool, len(upstream))
	var phases []Phase
	for _, u := range upstream {
		p := NormalizePhase(u)
		if !seen[p] {
			seen[p] = true
			phases = append(phases, p)
		}
	}
	return phases
}
