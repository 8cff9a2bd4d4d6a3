package domain

import (
	"context"
	"fmt"
)

// Fetcher retrieves the current readings at a coordinate.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (Readings, error)
}

// StatusError reports a non-success HTTP status from the readings provider.
type StatusError struct {
	Lat        float64
	Lon        float64
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("fetch %v,%v: status %d", e.Lat, e.Lon, e.StatusCode)
	}
	return fmt.Sprintf("fetch %v,%v: status %d: %s", e.Lat, e.Lon, e.StatusCode, e.Body)
}
