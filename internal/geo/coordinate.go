package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedCoordinate reports a coordinate that cannot be used: a string
// that does not match the "(lat, lon)" form the historical datasets use, or
// values outside the valid degree ranges.
var ErrMalformedCoordinate = errors.New("geo: malformed coordinate")

// ErrCoordinateRange is the out-of-range case of ErrMalformedCoordinate:
// latitude outside [-90, 90], longitude outside [-180, 180], or NaN.
var ErrCoordinateRange = fmt.Errorf("%w: out of range", ErrMalformedCoordinate)

// Coordinate is an immutable geographic point in decimal degrees (WGS 84).
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate validates lat/lon ranges and returns the value.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrCoordinateRange, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrCoordinateRange, lon)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// ParseCoordinate parses the "(lat, lon)" string form found in the reference
// CSVs, e.g. "(1.3521, 103.8198)". The parser is strict: both parentheses, two
// comma-separated decimal numbers, nothing else. Anything that does not match
// fails with ErrMalformedCoordinate.
func ParseCoordinate(s string) (Coordinate, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 || trimmed[0] != '(' || trimmed[len(trimmed)-1] != ')' {
		return Coordinate{}, fmt.Errorf("%w: %q is not of the form \"(lat, lon)\"", ErrMalformedCoordinate, s)
	}
	inner := trimmed[1 : len(trimmed)-1]
	parts := strings.Split(inner, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q must contain exactly one comma", ErrMalformedCoordinate, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: invalid latitude in %q", ErrMalformedCoordinate, s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: invalid longitude in %q", ErrMalformedCoordinate, s)
	}
	return NewCoordinate(lat, lon)
}

// String renders the coordinate back in the "(lat, lon)" dataset form.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%v, %v)", c.Lat, c.Lon)
}
