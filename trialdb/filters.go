package trialdb

import (
	"fmt"
	"strings"
)

// TrialFilter narrows trial queries. Zero-valued fields are ignored, so the
// zero value matches everything.
type TrialFilter struct {
	Region     string   // "US", "EU" or "Others"
	Conditions []string // match any of these conditions, case-insensitively
	StartDate  string   // inclusive lower bound on the normalized start date (YYYY-MM-DD)
	EndDate    string   // inclusive upper bound on the normalized start date (YYYY-MM-DD)
}

// IsZero reports whether the filter matches everything.
func (f TrialFilter) IsZero() bool {
	return f.Region == "" && len(f.Conditions) == 0 && f.StartDate == "" && f.EndDate == ""
}

// buildClinicalTrialWhere renders the filter as a WHERE clause for the
// clinical_trials table. The returned clause is empty or starts with " WHERE".
func buildClinicalTrialWhere(filter TrialFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.Region != "" {
		clauses = append(clauses, "clinical_trials.region = ?")
		args = append(args, filter.Region)
	}
	if len(filter.Conditions) > 0 {
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM json_each(clinical_trials.conditions) AS jc WHERE lower(jc.value) IN (%s))",
			placeholders(len(filter.Conditions)),
		))
		for _, condition := range filter.Conditions {
			args = append(args, strings.ToLower(condition))
		}
	}
	if filter.StartDate != "" {
		clauses = append(clauses, "clinical_trials.start_date_norm >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		// Rows without a parseable start date sort below every real date, so
		// the upper bound has to exclude them explicitly.
		clauses = append(clauses, "clinical_trials.start_date_norm != '' AND clinical_trials.start_date_norm <= ?")
		args = append(args, filter.EndDate)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// buildEudractTrialWhere renders the filter as a WHERE clause for the
// eudract_trials table.
func buildEudractTrialWhere(filter TrialFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.Region != "" {
		clauses = append(clauses, "eudract_trials.region = ?")
		args = append(args, filter.Region)
	}
	if len(filter.Conditions) > 0 {
		clauses = append(clauses, fmt.Sprintf(
			"lower(eudract_trials.condition) IN (%s)",
			placeholders(len(filter.Conditions)),
		))
		for _, condition := range filter.Conditions {
			args = append(args, strings.ToLower(condition))
		}
	}
	if filter.StartDate != "" {
		clauses = append(clauses, "eudract_trials.start_date_norm >= ?")
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		clauses = append(clauses, "eudract_trials.start_date_norm != '' AND eudract_trials.start_date_norm <= ?")
		args = append(args, filter.EndDate)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// andClause appends one more condition to a clause produced by the builders
// above.
func andClause(where, clause string) string {
	if where == "" {
		return " WHERE " + clause
	}
	return where + " AND " + clause
}
