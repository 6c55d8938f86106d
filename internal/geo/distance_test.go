package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name     string
		from     Coordinate
		to       Coordinate
		expected float64
		delta    float64
	}{
		{
			name:     "coincident points",
			from:     Coordinate{Lat: 1.3521, Lon: 103.8198},
			to:       Coordinate{Lat: 1.3521, Lon: 103.8198},
			expected: 0,
			delta:    0,
		},
		{
			// One degree of longitude along the equator is exactly
			// a*pi/180 = 111.3195 km.
			name:     "one degree along the equator",
			from:     Coordinate{Lat: 0, Lon: 0},
			to:       Coordinate{Lat: 0, Lon: 1},
			expected: 111.3195,
			delta:    0.0005,
		},
		{
			// WGS-84 meridian arc from the equator to 1°N.
			name:     "one degree along the meridian",
			from:     Coordinate{Lat: 0, Lon: 0},
			to:       Coordinate{Lat: 1, Lon: 0},
			expected: 110.574,
			delta:    0.005,
		},
		{
			name:     "quarter of the equator",
			from:     Coordinate{Lat: 0, Lon: 0},
			to:       Coordinate{Lat: 0, Lon: 90},
			expected: 10018.754,
			delta:    0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceKm(tt.from, tt.to), tt.delta)
		})
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	city := Coordinate{Lat: 1.3521, Lon: 103.8198}
	airport := Coordinate{Lat: 1.3644, Lon: 103.9915}

	assert.InDelta(t, DistanceKm(city, airport), DistanceKm(airport, city), 1e-9)
}

func TestDistanceKmAgreesWithGreatCircleAtCityScale(t *testing.T) {
	// The ellipsoidal and spherical models differ by less than ~0.6% over
	// short distances; a larger gap would indicate a formula error.
	pairs := [][2]Coordinate{
		{{Lat: 1.3521, Lon: 103.8198}, {Lat: 1.3644, Lon: 103.9915}},
		{{Lat: 1.3521, Lon: 103.8198}, {Lat: 1.2966, Lon: 103.7764}},
		{{Lat: 1.4382, Lon: 103.7890}, {Lat: 1.3329, Lon: 103.7436}},
	}

	for _, pair := range pairs {
		geodesic := DistanceKm(pair[0], pair[1])
		sphere := greatCircleKm(pair[0], pair[1])

		assert.Greater(t, geodesic, 0.0)
		assert.InEpsilon(t, sphere, geodesic, 0.006)
	}
}

func TestDistanceKmNearAntipode(t *testing.T) {
	// Near-antipodal pairs are where Vincenty iteration may give up; either
	// branch must still report roughly half the Earth's circumference.
	d := DistanceKm(Coordinate{Lat: 0, Lon: 0}, Coordinate{Lat: 0.5, Lon: 179.5})

	assert.False(t, math.IsNaN(d))
	assert.Greater(t, d, 19800.0)
	assert.Less(t, d, 20100.0)
}
