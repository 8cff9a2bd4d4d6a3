package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/air-quality-comparison/internal/domain"
)

// locationsFile is the YAML layout of an external registry:
//
//	locations:
//	  - name: Tehran
//	    lat: 35.6892
//	    lon: 51.3890
type locationsFile struct {
	Locations []domain.Location `yaml:"locations" validate:"required,min=1,unique=Name,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadLocations reads and validates a registry file. Order in the file is
// the registry order.
func LoadLocations(path string) ([]domain.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}
	return ParseLocations(data)
}

// ParseLocations decodes and validates a YAML registry.
func ParseLocations(data []byte) ([]domain.Location, error) {
	var f locationsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse locations: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid locations: %w", describe(err))
	}
	return f.Locations, nil
}

// describe flattens validator errors into one readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
