package domain

import "time"

// Row is one location's readings. A failed fetch produces a zero row with Failed set.
type Row struct {
	Location  Location
	Values    Readings
	FetchedAt time.Time
	Failed    bool
	Reason    string
}

// NewRow builds a row for a successful fetch.
func NewRow(loc Location, values Readings) Row {
	return Row{Location: loc, Values: values, FetchedAt: clock.Now().UTC()}
}

// FailedRow builds the placeholder row for a location whose fetch failed.
func FailedRow(loc Location, reason string) Row {
	return Row{Location: loc, FetchedAt: clock.Now().UTC(), Failed: true, Reason: reason}
}

// Table holds one row per location, in registry order.
type Table struct {
	RunID string
	Rows  []Row
}

// Names returns the location names in row order.
func (t Table) Names() []string {
	names := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		names[i] = r.Location.Name
	}
	return names
}

// Column returns every row's value for the pollutant at column i.
func (t Table) Column(i int) []float64 {
	col := make([]float64, len(t.Rows))
	for j, r := range t.Rows {
		col[j] = r.Values[i]
	}
	return col
}

// FailedCount returns the number of rows whose fetch failed.
func (t Table) FailedCount() int {
	n := 0
	for _, r := range t.Rows {
		if r.Failed {
			n++
		}
	}
	return n
}
