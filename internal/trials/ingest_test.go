package trials

import (
	"testing"

	"cohort.clinicaltrials.dev/internal/ctgov"
	"cohort.clinicaltrials.dev/internal/eudract"

	"github.com/stretchr/testify/assert"
)

func TestClinicalTrialParams(t *testing.T) {
	study := ctgov.Study{
		ProtocolSection: ctgov.ProtocolSection{
			IdentificationModule: ctgov.IdentificationModule{
				NctID:      "NCT01234567",
				BriefTitle: "Metformin in Type 2 Diabetes",
			},
			StatusModule: ctgov.StatusModule{
				OverallStatus:        "RECRUITING",
				StartDateStruct:      ctgov.DateStruct{Date: "2021-03"},
				CompletionDateStruct: ctgov.DateStruct{Date: "2024-06-30"},
			},
			SponsorCollaboratorsModule: ctgov.SponsorCollaboratorsModule{
				LeadSponsor: ctgov.Sponsor{Name: "Acme Pharma"},
			},
			ConditionsModule: ctgov.ConditionsModule{
				Conditions: []string{"Diabetes Mellitus, Type 2"},
			},
			DesignModule: ctgov.DesignModule{
				Phases:         []string{"PHASE2", "PHASE3"},
				EnrollmentInfo: ctgov.EnrollmentInfo{Count: 150},
			},
			ContactsLocationsModule: ctgov.ContactsLocationsModule{
				Locations: []ctgov.Location{
					{Facility: "Hopital Central", City: "Paris", Country: "France"},
					{Facility: "Mobile Unit"},
					{Facility: "Boston General", City: "Boston", Country: "United States"},
				},
			},
		},
	}

	params, ok := clinicalTrialParams(study)
	assert.True(t, ok, "should ingest a study with an NCT ID")
	assert.Equal(t, "NCT01234567", params.NctID)
	assert.Equal(t, "Metformin in Type 2 Diabetes", params.Title)
	assert.Equal(t, "recruiting", params.Status)
	assert.Equal(t, "Acme Pharma", params.Sponsor)
	assert.Equal(t, int64(150), params.Enrollment)
	assert.Equal(t, `["Diabetes Mellitus, Type 2"]`, params.Conditions)
	assert.Equal(t, `["France","United States"]`, params.Locations, "should drop locations without a country")
	assert.Equal(t, `["phase_2","phase_3"]`, params.Phases)
	assert.Equal(t, "US", params.Region, "a US site should outrank EU sites")
	assert.Equal(t, "2021-03", params.StartDate)
	assert.Equal(t, "2021-03-01", params.StartDateNorm, "partial start dates should normalize")
	assert.Equal(t, "2024-06-30", params.CompletionDate)
	assert.Equal(t, "2024-06-30", params.CompletionDateNorm)
}

func TestClinicalTrialParamsDefaults(t *testing.T) {
	study := ctgov.Study{
		ProtocolSection: ctgov.ProtocolSection{
			IdentificationModule: ctgov.IdentificationModule{NctID: "NCT00000001"},
		},
	}

	params, ok := clinicalTrialParams(study)
	assert.True(t, ok)
	assert.Equal(t, "Unknown", params.Sponsor, "a missing lead sponsor should become Unknown")
	assert.Equal(t, "unknown", params.Status)
	assert.Equal(t, "[]", params.Conditions)
	assert.Equal(t, "[]", params.Locations)
	assert.Equal(t, "[]", params.Phases)
	assert.Equal(t, "Others", params.Region)
	assert.Empty(t, params.StartDateNorm)
	assert.Empty(t, params.CompletionDateNorm)
}

func TestClinicalTrialParamsSkipsMissingID(t *testing.T) {
	_, ok := clinicalTrialParams(ctgov.Study{})
	assert.False(t, ok, "a study without an NCT ID must not produce a row")
}

func TestEudractTrialParams(t *testing.T) {
	record := eudract.Record{
		EudractNumber: "2020-001234-56",
		Condition:     "Advanced Melanoma",
		Sponsor:       "Cancer Research Org",
		Enrollment:    240,
		TrialProtocol: "GB (Outside EU/EEA)",
		StartDate:     "2020-05-10",
		EndDate:       "2023-01",
	}

	params, ok := eudractTrialParams(record)
	assert.True(t, ok, "should ingest a record with an EudraCT number")
	assert.Equal(t, "2020-001234-56", params.EudractNumber)
	assert.Equal(t, "Advanced Melanoma", params.Condition)
	assert.Equal(t, "Cancer Research Org", params.Sponsor)
	assert.Equal(t, int64(240), params.Enrollment)
	assert.Equal(t, "GB (Outside EU/EEA)", params.TrialProtocol)
	assert.Equal(t, "Others", params.Region, "a protocol conducted outside the EU/EEA is Others")
	assert.Equal(t, "2020-05-10", params.StartDateNorm)
	assert.Equal(t, "2023-01-01", params.EndDateNorm, "partial end dates should normalize")
}

func TestEudractTrialParamsDefaults(t *testing.T) {
	params, ok := eudractTrialParams(eudract.Record{EudractNumber: "2021-000001-01"})
	assert.True(t, ok)
	assert.Equal(t, "Unknown", params.Sponsor, "a missing sponsor should become Unknown")
	assert.Equal(t, "EU", params.Region, "protocols without an outside marker are EU trials")
}

func TestEudractTrialParamsSkipsMissingNumber(t *testing.T) {
	_, ok := eudractTrialParams(eudract.Record{Condition: "Asthma"})
	assert.False(t, ok, "a record without an EudraCT number must not produce a row")
}
