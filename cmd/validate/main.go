// Command validate checks a locations registry file before it is handed to
// the collection job through LOCATIONS_FILE. It verifies the YAML schema,
// coordinate ranges, and name and coordinate uniqueness. Without -locations
// it checks the built-in registry.
//
// Usage:
//
//	go run ./cmd/validate -locations configs/locations.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/air-quality-comparison/internal/config"
	"github.com/couchcryptid/air-quality-comparison/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	path := flag.String("locations", "", "path to a locations YAML file (default: built-in registry)")
	flag.Parse()

	os.Exit(run(os.Stdout, *path))
}

func run(w io.Writer, path string) int {
	fmt.Fprintln(w, "=== Locations Validation ===")
	fmt.Fprintln(w)

	schema := &phase{name: "Schema and coordinate ranges"}
	var locs []domain.Location
	if path == "" {
		fmt.Fprintln(w, "Source: built-in registry")
		locs = domain.DefaultLocations()
	} else {
		fmt.Fprintf(w, "Source: %s\n", path)
		var err error
		locs, err = config.LoadLocations(path)
		if err != nil {
			schema.errorf("%v", err)
		}
	}

	phases := []*phase{
		schema,
		validateDistinctCoordinates(locs),
	}

	fmt.Fprintln(w)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Locations: %d\n", len(locs))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// validateDistinctCoordinates flags locations sharing a coordinate pair, which
// would produce identical rows under different names.
func validateDistinctCoordinates(locs []domain.Location) *phase {
	p := &phase{name: "Distinct coordinates"}
	seen := make(map[[2]float64]string, len(locs))
	for _, l := range locs {
		k := [2]float64{l.Lat, l.Lon}
		if prev, ok := seen[k]; ok {
			p.errorf("%s and %s share coordinates %v,%v", prev, l.Name, l.Lat, l.Lon)
			continue
		}
		seen[k] = l.Name
	}
	return p
}
