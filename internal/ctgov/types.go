package ctgov

// StudiesResponse is one page of the ClinicalTrials.gov v2 /studies endpoint.
type StudiesResponse struct {
	Studies       []Study `json:"studies"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

type Study struct {
	ProtocolSection ProtocolSection `json:"protocolSection"`
}

// ProtocolSection carries the study modules the dashboard aggregates over.
// The v2 API nests every requested field under its module even when a field
// mask is applied.
type ProtocolSection struct {
	IdentificationModule       IdentificationModule       `json:"identificationModule"`
	StatusModule               StatusModule               `json:"statusModule"`
	SponsorCollaboratorsModule SponsorCollaboratorsModule `json:"sponsorCollaboratorsModule"`
	ConditionsModule           ConditionsModule           `json:"conditionsModule"`
	DesignModule               DesignModule               `json:"designModule"`
	ContactsLocationsModule    ContactsLocationsModule    `json:"contactsLocationsModule"`
}

type IdentificationModule struct {
	NctID      string `json:"nctId"`
	BriefTitle string `json:"briefTitle,omitempty"`
}

type StatusModule struct {
	OverallStatus        string     `json:"overallStatus,omitempty"`
	StartDateStruct      DateStruct `json:"startDateStruct,omitempty"`
	CompletionDateStruct DateStruct `json:"completionDateStruct,omitempty"`
}

// DateStruct dates are partial: YYYY, YYYY-MM or YYYY-MM-DD.
type DateStruct struct {
	Date string `json:"date,omitempty"`
	Type string `json:"type,omitempty"`
}

type SponsorCollaboratorsModule struct {
	LeadSponsor Sponsor `json:"leadSponsor,omitempty"`
}

type Sponsor struct {
	Name  string `json:"name,omitempty"`
	Class string `json:"class,omitempty"`
}

type ConditionsModule struct {
	Conditions []string `json:"conditions,omitempty"`
}

type DesignModule struct {
	Phases         []string       `json:"phases,omitempty"`
	EnrollmentInfo EnrollmentInfo `json:"enrollmentInfo,omitempty"`
}

type EnrollmentInfo struct {
	Count int64  `json:"count,omitempty"`
	Type  string `json:"type,omitempty"`
}

type ContactsLocationsModule struct {
	Locations []Location `json:"locations,omitempty"`
}

type Location struct {
	Facility string `json:"facility,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
}
