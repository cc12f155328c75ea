package models

import "strings"

// Region buckets a trial's footprint for enrollment aggregation and filtering.
type Region string

const (
	RegionUS     Region = "US"
	RegionEU     Region = "EU"
	RegionOthers Region = "Others"
)

// euCountries are the 27 EU member states as they appear in
// ClinicalTrials.gov location records.
var euCountries = map[string]bool{
	"Austria": true, "Belgium": true, "Bulgaria": true, "Croatia": true,
	"Cyprus": true, "Czechia": true, "Denmark": true, "Estonia": true,
	"Finland": true, "France": true, "Germany": true, "Greece": true,
	"Hungary": true, "Ireland": true, "Italy": true, "Latvia": true,
	"Lithuania": true, "Luxembourg": true, "Malta": true, "Netherlands": true,
	"Poland": true, "Portugal": true, "Romania": true, "Slovakia": true,
	"Slovenia": true, "Spain": true, "Sweden": true,
}

// ClassifyCountries buckets a registry study by its site countries.
// Any US site wins over EU sites; trials with neither are Others.
func ClassifyCountries(countries []string) Region {
	isEU := false
	for _, country := range countries {
		if country == "United States" {
			return RegionUS
		}
		if euCountries[country] {
			isEU = true
		}
	}
	if isEU {
		return RegionEU
	}
	return RegionOthers
}

// ClassifyTrialProtocol buckets a EudraCT record by its protocol field.
// The register marks non-EEA conduct with a trailing "Outside EU/EEA)";
// everything else is an EU trial.
func ClassifyTrialProtocol(protocol string) Region {
	if strings.HasSuffix(protocol, "Outside EU/EEA)") {
		return RegionOthers
	}
	return RegionEU
}

// RegionFromFilter maps a region query-parameter value to a Region.
// The empty string means no filter and returns ok=false.
func RegionFromFilter(value string) (Region, bool) {
	switch strings.ToLower(value) {
	case "us":
		return RegionUS, true
	case "eu":
		return RegionEU, true
	case "others":
		return RegionOthers, true
	default:
		return "", false
	}
}
