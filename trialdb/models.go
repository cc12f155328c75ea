package trialdb

import "encoding/json"

// ClinicalTrial represents one ClinicalTrials.gov study row
type ClinicalTrial struct {
	NctID              string // nct_id
	Title              string // title
	Status             string // status (normalized vocabulary)
	Sponsor            string // sponsor
	Enrollment         int64  // enrollment
	Conditions         string // conditions (JSON array)
	Locations          string // locations (JSON array of countries)
	Phases             string // phases (JSON array, normalized vocabulary)
	Region             string // region (US/EU/Others)
	StartDate          string // start_date (as reported)
	CompletionDate     string // completion_date (as reported)
	StartDateNorm      string // start_date_norm (YYYY-MM-DD or empty)
	CompletionDateNorm string // completion_date_norm (YYYY-MM-DD or empty)
}

// ConditionList decodes the conditions JSON column.
func (t ClinicalTrial) ConditionList() []string {
	return DecodeStringList(t.Conditions)
}

// LocationList decodes the locations JSON column.
func (t ClinicalTrial) LocationList() []string {
	return DecodeStringList(t.Locations)
}

// PhaseList decodes the phases JSON column.
func (t ClinicalTrial) PhaseList() []string {
	return DecodeStringList(t.Phases)
}

// EudractTrial represents one EudraCT register row
type EudractTrial struct {
	EudractNumber string // eudract_number
	Condition     string // condition
	Sponsor       string // sponsor
	Enrollment    int64  // enrollment
	TrialProtocol string // trial_protocol
	Region        string // region (EU/Others)
	StartDate     string // start_date (record first entered)
	EndDate       string // end_date (global end of trial)
	StartDateNorm string // start_date_norm (YYYY-MM-DD or empty)
	EndDateNorm   string // end_date_norm (YYYY-MM-DD or empty)
}

// EncodeStringList marshals a string slice for storage in a JSON text column.
// Nil and empty slices are stored as empty arrays so json_each always gets
// valid input.
func EncodeStringList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeStringList is the inverse of EncodeStringList. Malformed input
// decodes to nil.
func DecodeStringList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}
