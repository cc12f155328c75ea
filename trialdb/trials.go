package trialdb

import (
	"context"
	"database/sql"
)

const upsertClinicalTrial = `
INSERT OR REPLACE INTO clinical_trials (
	nct_id, title, status, sponsor, enrollment,
	conditions, locations, phases, region,
	start_date, completion_date, start_date_norm, completion_date_norm
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type UpsertClinicalTrialParams struct {
	NctID              string
	Title              string
	Status             string
	Sponsor            string
	Enrollment         int64
	Conditions         string // JSON array
	Locations          string // JSON array
	Phases             string // JSON array
	Region             string
	StartDate          string
	CompletionDate     string
	StartDateNorm      string
	CompletionDateNorm string
}

func (q *Queries) UpsertClinicalTrial(ctx context.Context, arg UpsertClinicalTrialParams) error {
	_, err := q.db.ExecContext(ctx, upsertClinicalTrial,
		arg.NctID, arg.Title, arg.Status, arg.Sponsor, arg.Enrollment,
		arg.Conditions, arg.Locations, arg.Phases, arg.Region,
		arg.StartDate, arg.CompletionDate, arg.StartDateNorm, arg.CompletionDateNorm,
	)
	return err
}

const clinicalTrialColumns = `nct_id, title, status, sponsor, enrollment,
	conditions, locations, phases, region,
	start_date, completion_date, start_date_norm, completion_date_norm`

func scanClinicalTrial(row interface{ Scan(dest ...any) error }) (ClinicalTrial, error) {
	var t ClinicalTrial
	err := row.Scan(
		&t.NctID, &t.Title, &t.Status, &t.Sponsor, &t.Enrollment,
		&t.Conditions, &t.Locations, &t.Phases, &t.Region,
		&t.StartDate, &t.CompletionDate, &t.StartDateNorm, &t.CompletionDateNorm,
	)
	return t, err
}

func (q *Queries) GetClinicalTrial(ctx context.Context, nctID string) (ClinicalTrial, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+clinicalTrialColumns+" FROM clinical_trials WHERE nct_id = ?", nctID)
	return scanClinicalTrial(row)
}

// ListClinicalTrials returns the studies matching the filter, ordered by ID.
func (q *Queries) ListClinicalTrials(ctx context.Context, filter TrialFilter) ([]ClinicalTrial, error) {
	where, args := buildClinicalTrialWhere(filter)
	query := "SELECT " + clinicalTrialColumns + " FROM clinical_trials" + where + " ORDER BY nct_id"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var trials []ClinicalTrial
	for rows.Next() {
		t, err := scanClinicalTrial(rows)
		if err != nil {
			return nil, err
		}
		trials = append(trials, t)
	}
	return trials, rows.Err()
}

func (q *Queries) CountClinicalTrials(ctx context.Context, filter TrialFilter) (int64, error) {
	where, args := buildClinicalTrialWhere(filter)
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clinical_trials"+where, args...).Scan(&count)
	return count, err
}

// CountRow is one value/count pair from a grouped aggregation query
type CountRow struct {
	Value string
	Count int64
}

func (q *Queries) queryCountRows(ctx context.Context, query string, args ...any) ([]CountRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var counts []CountRow
	for rows.Next() {
		var row CountRow
		if err := rows.Scan(&row.Value, &row.Count); err != nil {
			return nil, err
		}
		counts = append(counts, row)
	}
	return counts, rows.Err()
}

// TopConditions counts condition occurrences across the matching studies.
// Ties are broken alphabetically so rankings are stable.
func (q *Queries) TopConditions(ctx context.Context, filter TrialFilter, limit int64) ([]CountRow, error) {
	where, args := buildClinicalTrialWhere(filter)
	query := `
SELECT je.value, COUNT(*) AS cnt
FROM clinical_trials, json_each(clinical_trials.conditions) AS je` + where + `
GROUP BY je.value
ORDER BY cnt DESC, je.value ASC
LIMIT ?`
	args = append(args, limit)
	return q.queryCountRows(ctx, query, args...)
}

// TopSponsors counts studies per sponsor across the matching studies.
func (q *Queries) TopSponsors(ctx context.Context, filter TrialFilter, limit int64) ([]CountRow, error) {
	where, args := buildClinicalTrialWhere(filter)
	query := `
SELECT sponsor, COUNT(*) AS cnt
FROM clinical_trials` + where + `
GROUP BY sponsor
ORDER BY cnt DESC, sponsor ASC
LIMIT ?`
	args = append(args, limit)
	return q.queryCountRows(ctx, query, args...)
}

// CountsByStatus counts studies per recruitment status.
func (q *Queries) CountsByStatus(ctx context.Context, filter TrialFilter) ([]CountRow, error) {
	where, args := buildClinicalTrialWhere(filter)
	query := `
SELECT status, COUNT(*) AS cnt
FROM clinical_trials` + where + `
GROUP BY status
ORDER BY cnt DESC, status ASC`
	return q.queryCountRows(ctx, query, args...)
}

// CountsByPhase counts studies per trial phase. Studies reporting several
// phases count once per phase.
func (q *Queries) CountsByPhase(ctx context.Context, filter TrialFilter) ([]CountRow, error) {
	where, args := buildClinicalTrialWhere(filter)
	query := `
SELECT jp.value, COUNT(*) AS cnt
FROM clinical_trials, json_each(clinical_trials.phases) AS jp` + where + `
GROUP BY jp.value
ORDER BY cnt DESC, jp.value ASC`
	return q.queryCountRows(ctx, query, args...)
}

// EnrollmentByRegion sums enrollment per region across the matching studies.
func (q *Queries) EnrollmentByRegion(ctx context.Context, filter TrialFilter) ([]CountRow, error) {
	where, args := buildClinicalTrialWhere(filter)
	query := `
SELECT region, COALESCE(SUM(enrollment), 0)
FROM clinical_trials` + where + `
GROUP BY region`
	return q.queryCountRows(ctx, query, args...)
}

// EnrollmentValues returns the raw enrollment figures of the matching studies.
func (q *Queries) EnrollmentValues(ctx context.Context, filter TrialFilter) ([]float64, error) {
	where, args := buildClinicalTrialWhere(filter)
	rows, err := q.db.QueryContext(ctx, "SELECT enrollment FROM clinical_trials"+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// MonthlyStartCounts buckets the matching studies by start month (YYYY-MM).
// Studies without a parseable start date are skipped.
func (q *Queries) MonthlyStartCounts(ctx context.Context, filter TrialFilter) ([]CountRow, error) {
	where, args := buildClinicalTrialWhere(filter)
	where = andClause(where, "clinical_trials.start_date_norm != ''")
	query := `
SELECT substr(start_date_norm, 1, 7) AS month, COUNT(*) AS cnt
FROM clinical_trials` + where + `
GROUP BY month
ORDER BY month ASC`
	return q.queryCountRows(ctx, query, args...)
}

// DistinctConditions returns every condition mentioned by at least one study,
// sorted alphabetically.
func (q *Queries) DistinctConditions(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT DISTINCT je.value
FROM clinical_trials, json_each(clinical_trials.conditions) AS je
ORDER BY je.value ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var conditions []string
	for rows.Next() {
		var condition string
		if err := rows.Scan(&condition); err != nil {
			return nil, err
		}
		conditions = append(conditions, condition)
	}
	return conditions, rows.Err()
}

// DateBoundsRow holds the earliest and latest normalized start dates across
// both registers. Both fields are NULL when no dated trials are stored.
type DateBoundsRow struct {
	MinDate sql.NullString
	MaxDate sql.NullString
}

const dateBounds = `
SELECT MIN(d), MAX(d) FROM (
	SELECT start_date_norm AS d FROM clinical_trials WHERE start_date_norm != ''
	UNION ALL
	SELECT start_date_norm AS d FROM eudract_trials WHERE start_date_norm != ''
)`

func (q *Queries) DateBounds(ctx context.Context) (DateBoundsRow, error) {
	var bounds DateBoundsRow
	err := q.db.QueryRowContext(ctx, dateBounds).Scan(&bounds.MinDate, &bounds.MaxDate)
	return bounds, err
}
