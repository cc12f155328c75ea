package trials

import (
	"cohort.clinicaltrials.dev/internal/ctgov"
	"cohort.clinicaltrials.dev/internal/eudract"
	"cohort.clinicaltrials.dev/internal/models"
	"cohort.clinicaltrials.dev/internal/utils"
	"cohort.clinicaltrials.dev/trialdb"
)

// clinicalTrialParams flattens a registry study into a database row. The
// second return is false when the study carries no NCT ID and must be
// skipped, since an empty key would let unrelated studies replace each other.
func clinicalTrialParams(study ctgov.Study) (trialdb.UpsertClinicalTrialParams, bool) {
	ps := study.ProtocolSection
	nctID := ps.IdentificationModule.NctID
	if nctID == "" {
		return trialdb.UpsertClinicalTrialParams{}, false
	}

	sponsor := ps.SponsorCollaboratorsModule.LeadSponsor.Name
	if sponsor == "" {
		sponsor = "Unknown"
	}

	var countries []string
	for _, location := range ps.ContactsLocationsModule.Locations {
		if location.Country != "" {
			countries = append(countries, location.Country)
		}
	}

	startDate := ps.StatusModule.StartDateStruct.Date
	completionDate := ps.StatusModule.CompletionDateStruct.Date

	return trialdb.UpsertClinicalTrialParams{
		NctID:              nctID,
		Title:              ps.IdentificationModule.BriefTitle,
		Status:             string(models.NormalizeStatus(ps.StatusModule.OverallStatus)),
		Sponsor:            sponsor,
		Enrollment:         ps.DesignModule.EnrollmentInfo.Count,
		Conditions:         trialdb.EncodeStringList(ps.ConditionsModule.Conditions),
		Locations:          trialdb.EncodeStringList(countries),
		Phases:             trialdb.EncodeStringList(phaseStrings(models.NormalizePhases(ps.DesignModule.Phases))),
		Region:             string(models.ClassifyCountries(countries)),
		StartDate:          startDate,
		CompletionDate:     completionDate,
		StartDateNorm:      utils.NormalizeDate(startDate),
		CompletionDateNorm: utils.NormalizeDate(completionDate),
	}, true
}

// eudractTrialParams flattens a register record into a database row. Records
// without an EudraCT number are skipped for the same reason studies without
// an NCT ID are.
func eudractTrialParams(record eudract.Record) (trialdb.UpsertEudractTrialParams, bool) {
	if record.EudractNumber == "" {
		return trialdb.UpsertEudractTrialParams{}, false
	}

	sponsor := record.Sponsor
	if sponsor == "" {
		sponsor = "Unknown"
	}

	return trialdb.UpsertEudractTrialParams{
		EudractNumber: record.EudractNumber,
		Condition:     record.Condition,
		Sponsor:       sponsor,
		Enrollment:    record.Enrollment,
		TrialProtocol: record.TrialProtocol,
		Region:        string(models.ClassifyTrialProtocol(record.TrialProtocol)),
		StartDate:     record.StartDate,
		EndDate:       record.EndDate,
		StartDateNorm: utils.NormalizeDate(record.StartDate),
		EndDateNorm:   utils.NormalizeDate(record.EndDate),
	}, true
}

func phaseStrings(phases []models.Phase) []string {
	out := make([]string, 0, len(phases))
	for _, phase := range phases {
		out = append(out, string(phase))
	}
	return out
}
