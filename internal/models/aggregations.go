package models

// TotalsAggregation reports trial counts per source after filtering.
type TotalsAggregation struct {
	ClinicalTrialsTotal int64 `json:"clinicaltrials_total"`
	EudractTotal        int64 `json:"eudract_total"`
}

// ConditionAggregation holds the ten most frequent conditions per source,
// ordered by descending count.
type ConditionAggregation struct {
	ClinicalTrialsConditions OrderedCounts `json:"clinicaltrials_conditions"`
	EudractConditions        OrderedCounts `json:"eudract_conditions"`
}

// SponsorAggregation holds the ten most frequent lead sponsors per source.
type SponsorAggregation struct {
	ClinicalTrialsSponsors OrderedCounts `json:"clinicaltrials_sponsors"`
	EudractSponsors        OrderedCounts `json:"eudract_sponsors"`
}

// StatusAggregation counts registry studies per normalized status.
type StatusAggregation struct {
	ClinicalTrialsStatuses OrderedCounts `json:"clinicaltrials_statuses"`
}

// PhaseAggregation counts registry studies per normalized phase.
type PhaseAggregation struct {
	ClinicalTrialsPhases OrderedCounts `json:"clinicaltrials_phases"`
}

// RegionEnrollment sums enrollment per region bucket for registry studies.
type RegionEnrollment struct {
	US     int64 `json:"US"`
	EU     int64 `json:"EU"`
	Others int64 `json:"Others"`
}

// EudractRegionEnrollment sums enrollment for EudraCT trials, which split
// only into EU and non-EEA conduct.
type EudractRegionEnrollment struct {
	EU     int64 `json:"EU"`
	Others int64 `json:"Others"`
}

// EnrollmentByRegionAggregation is the payload for enrollment_by_region.
type EnrollmentByRegionAggregation struct {
	ClinicalTrialsEnrollment RegionEnrollment        `json:"clinicaltrials_enrollment"`
	EudractEnrollment        EudractRegionEnrollment `json:"eudract_enrollment"`
}

// EnrollmentStats summarizes the distribution of enrollment counts.
type EnrollmentStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
}

// EnrollmentStatsAggregation is the payload for enrollment_stats.
type EnrollmentStatsAggregation struct {
	ClinicalTrialsEnrollmentStats EnrollmentStats `json:"clinicaltrials_enrollment_stats"`
	EudractEnrollmentStats        EnrollmentStats `json:"eudract_enrollment_stats"`
}

// TrialsOverTimeAggregation buckets trial starts per month, oldest first.
type TrialsOverTimeAggregation struct {
	ClinicalTrialsMonthly OrderedCounts `json:"clinicaltrials_monthly"`
	EudractMonthly        OrderedCounts `json:"eudract_monthly"`
}

// DateBounds reports the earliest and latest start dates across both
// sources; both are null when no dated trials exist.
type DateBounds struct {
	MinDate *string `json:"min_date"`
	MaxDate *string `json:"max_date"`
}
