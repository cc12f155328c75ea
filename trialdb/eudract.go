package trialdb

import "context"

const upsertEudractTrial = `
INSERT OR REPLACE INTO eudract_trials (
	eudract_number, condition, sponsor, enrollment, trial_protocol,
	region, start_date, end_date, start_date_norm, end_date_norm
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type UpsertEudractTrialParams struct {
	EudractNumber string
	Condition     string
	Sponsor       string
	Enrollment    int64
	TrialProtocol string
	Region        string
	StartDate     string
	EndDate       string
	StartDateNorm string
	EndDateNorm   string
}

func (q *Queries) UpsertEudractTrial(ctx context.Context, arg UpsertEudractTrialParams) error {
	_, err := q.db.ExecContext(ctx, upsertEudractTrial,
		arg.EudractNumber, arg.Condition, arg.Sponsor, arg.Enrollment, arg.TrialProtocol,
		arg.Region, arg.StartDate, arg.EndDate, arg.StartDateNorm, arg.EndDateNorm,
	)
	return err
}

const eudractTrialColumns = `eudract_number, condition, sponsor, enrollment, trial_protocol,
	region, start_date, end_date, start_date_norm, end_date_norm`

func scanEudractTrial(row interface{ Scan(dest ...any) error }) (EudractTrial, error) {
	var t EudractTrial
	err := row.Scan(
		&t.EudractNumber, &t.Condition, &t.Sponsor, &t.Enrollment, &t.TrialProtocol,
		&t.Region, &t.StartDate, &t.EndDate, &t.StartDateNorm, &t.EndDateNorm,
	)
	return t, err
}

func (q *Queries) GetEudractTrial(ctx context.Context, eudractNumber string) (EudractTrial, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+eudractTrialColumns+" FROM eudract_trials WHERE eudract_number = ?", eudractNumber)
	return scanEudractTrial(row)
}

// ListEudractTrials returns the trials matching the filter, ordered by
// EudraCT number. A limit of zero or less means no limit.
func (q *Queries) ListEudractTrials(ctx context.Context, filter TrialFilter, limit int64) ([]EudractTrial, error) {
	where, args := buildEudractTrialWhere(filter)
	query := "SELECT " + eudractTrialColumns + " FROM eudract_trials" + where + " ORDER BY eudract_number"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var trials []EudractTrial
	for rows.Next() {
		t, err := scanEudractTrial(rows)
		if err != nil {
			return nil, err
		}
		trials = append(trials, t)
	}
	return trials, rows.Err()
}

func (q *Queries) CountEudractTrials(ctx context.Context, filter TrialFilter) (int64, error) {
	where, args := buildEudractTrialWhere(filter)
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM eudract_trials"+where, args...).Scan(&count)
	return count, err
}

// EudractTopConditions counts trials per medical condition.
func (q *Queries) EudractTopConditions(ctx context.Context, filter TrialFilter, limit int64) ([]CountRow, error) {
	where, args := buildEudractTrialWhere(filter)
	query := `
SELECT condition, COUNT(*) AS cnt
FROM eudract_trials` + where + `
GROUP BY condition
ORDER BY cnt DESC, condition ASC
LIMIT ?`
	args = append(args, limit)
	return q.queryCountRows(ctx, query, args...)
}

// EudractTopSponsors counts trials per sponsor.
func (q *Queries) EudractTopSponsors(ctx context.Context, filter TrialFilter, limit int64) ([]CountRow, error) {
	where, args := buildEudractTrialWhere(filter)
	query := `
SELECT sponsor, COUNT(*) AS cnt
FROM eudract_trials` + where + `
GROUP BY sponsor
ORDER BY cnt DESC, sponsor ASC
LIMIT ?`
	args = append(args, limit)
	return q.queryCountRows(ctx, query, args...)
}

// EudractEnrollmentByRegion sums enrollment per region across the matching
// trials. EudraCT regions are limited to EU and Others.
func (q *Queries) EudractEnrollmentByRegion(ctx context.Context, filter TrialFilter) ([]CountRow, error) {
	where, args := buildEudractTrialWhere(filter)
	query := `
SELECT region, COALESCE(SUM(enrollment), 0)
FROM eudract_trials` + where + `
GROUP BY region`
	return q.queryCountRows(ctx, query, args...)
}

// EudractEnrollmentValues returns the raw enrollment figures of the matching
// trials.
func (q *Queries) EudractEnrollmentValues(ctx context.Context, filter TrialFilter) ([]float64, error) {
	where, args := buildEudractTrialWhere(filter)
	rows, err := q.db.QueryContext(ctx, "SELECT enrollment FROM eudract_trials"+where, args...)
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

// EudractMonthlyStartCounts buckets the matching trials by the month their
// record was first entered (YYYY-MM).
func (q *Queries) EudractMonthlyStartCounts(ctx context.Context, filter TrialFilter) ([]CountRow, error) {
	where, args := buildEudractTrialWhere(filter)
	where = andClause(where, "eudract_trials.start_date_norm != ''")
	query := `
SELECT substr(start_date_norm, 1, 7) AS month, COUNT(*) AS cnt
FROM eudract_trials` + where + `
GROUP BY month
ORDER BY month ASC`
	return q.queryCountRows(ctx, query, args...)
}

// DistinctEudractConditions returns every stored medical condition, sorted
// alphabetically. Blank conditions are skipped.
func (q *Queries) DistinctEudractConditions(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT DISTINCT condition
FROM eudract_trials
WHERE condition != ''
ORDER BY condition ASC`)
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
