// Package report formats the plain-text console report for a collection run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/air-quality-comparison/internal/domain"
)

const separator = "----------------------------------------"

// Write prints per-location readings followed by the summary statistics.
func Write(w io.Writer, t domain.Table, s domain.Summary) error {
	var b strings.Builder

	b.WriteString("\nAir quality information for each location:\n\n")
	for _, row := range t.Rows {
		fmt.Fprintf(&b, "location: %s\n", row.Location.Name)
		if row.Failed {
			fmt.Fprintf(&b, "status: fetch failed (%s)\n", strings.Join(strings.Fields(row.Reason), " "))
		}
		for i, p := range domain.Pollutants {
			fmt.Fprintf(&b, "%s: %.2f %s\n", p.Label(), row.Values[i], domain.Unit)
		}
		b.WriteString(separator + "\n")
	}

	b.WriteString("\nAverage values of pollutants for all locations:\n")
	for i, p := range domain.Pollutants {
		if s.Contributing == 0 {
			fmt.Fprintf(&b, "%s Mean: n/a, STD: n/a\n", p.Label())
			continue
		}
		st := s.Stats[i]
		fmt.Fprintf(&b, "%s Mean: %.2f %s, STD: %.2f %s\n", p.Label(), st.Mean, domain.Unit, st.StdDev, domain.Unit)
	}
	if s.Excluded > 0 {
		fmt.Fprintf(&b, "(%d of %d locations contributed; %d failed fetches excluded)\n",
			s.Contributing, len(t.Rows), s.Excluded)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
