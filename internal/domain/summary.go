package domain

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// FailurePolicy decides how failed rows enter the summary statistics.
type FailurePolicy string

const (
	// ExcludeFailed leaves failed rows out of mean and standard deviation.
	ExcludeFailed FailurePolicy = "exclude"
	// ZeroFill averages failed rows in as zero readings.
	ZeroFill FailurePolicy = "zero"
)

// ParseFailurePolicy validates a policy name.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(s); p {
	case ExcludeFailed, ZeroFill:
		return p, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q", s)
	}
}

// Stat is the mean and population standard deviation of one pollutant column.
type Stat struct {
	Mean   float64
	StdDev float64
}

// Summary holds per-pollutant statistics over a table.
type Summary struct {
	Stats        [NumPollutants]Stat
	Contributing int // rows that fed the statistics
	Excluded     int // failed rows left out
}

// Summarize computes the mean and population standard deviation of each
// pollutant column. With no contributing rows every Stat is zero.
func Summarize(t Table, policy FailurePolicy) Summary {
	rows := make([]Row, 0, len(t.Rows))
	var s Summary
	for _, r := range t.Rows {
		if r.Failed && policy == ExcludeFailed {
			s.Excluded++
			continue
		}
		rows = append(rows, r)
	}
	s.Contributing = len(rows)
	if len(rows) == 0 {
		return s
	}

	col := make(stats.Float64Data, len(rows))
	for i := range Pollutants {
		for j, r := range rows {
			col[j] = r.Values[i]
		}
		// Errors are only returned for empty input, ruled out above.
		mean, _ := stats.Mean(col)
		sd, _ := stats.StandardDeviationPopulation(col)
		s.Stats[i] = Stat{Mean: mean, StdDev: sd}
	}
	return s
}
