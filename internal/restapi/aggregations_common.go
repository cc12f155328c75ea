package restapi

import (
	"cohort.clinicaltrials.dev/internal/models"
	"cohort.clinicaltrials.dev/trialdb"

	"github.com/montanaflynn/stats"
)

// topN caps ranked aggregations at the ten entries the dashboard charts show.
const topN = 10

func orderedCounts(rows []trialdb.CountRow) models.OrderedCounts {
	counts := make(models.OrderedCounts, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, models.KeyCount{Key: row.Value, Count: row.Count})
	}
	return counts
}

// enrollmentStats summarizes a set of enrollment values. An empty set yields
// the zero stats rather than NaNs.
func enrollmentStats(values []float64) (models.EnrollmentStats, error) {
	if len(values) == 0 {
		return models.EnrollmentStats{}, nil
	}

	data := stats.Float64Data(values)

	mean, err := data.Mean()
	if err != nil {
		return models.EnrollmentStats{}, err
	}
	median, err := data.Median()
	if err != nil {
		return models.EnrollmentStats{}, err
	}
	stdDev, err := data.StandardDeviation()
	if err != nil {
		return models.EnrollmentStats{}, err
	}
	minimum, err := data.Min()
	if err != nil {
		return models.EnrollmentStats{}, err
	}
	maximum, err := data.Max()
	if err != nil {
		return models.EnrollmentStats{}, err
	}
	// Nearest-rank: Percentile proper errors on fewer than five values, and
	// filtered sets can match that few trials.
	p25, err := data.PercentileNearestRank(25)
	if err != nil {
		return models.EnrollmentStats{}, err
	}
	p75, err := data.PercentileNearestRank(75)
	if err != nil {
		return models.EnrollmentStats{}, err
	}

	return models.EnrollmentStats{
		Count:  len(values),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    minimum,
		Max:    maximum,
		P25:    p25,
		P75:    p75,
	}, nil
}
