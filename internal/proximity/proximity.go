// Package proximity computes radius features for a point against a facility
// collection: the in-radius count and nearest distance, plus the qualifying
// identifiers ordered by distance.
package proximity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"resale-api/internal/geo"
	"resale-api/internal/models"
)

// ErrInvalidRadius reports a non-positive or NaN search radius.
var ErrInvalidRadius = errors.New("proximity: radius must be positive")

// Result is the outcome of one Query call.
type Result struct {
	// Count is the number of records within the radius (boundary inclusive).
	Count int
	// NearestKm is the distance to the closest record regardless of radius,
	// rounded to one decimal. +Inf when the collection is empty.
	NearestKm float64
	// IDs holds the identifier field of every in-radius record, ascending by
	// distance, deduplicated keeping the closest occurrence. Never nil.
	IDs []string
}

// NearestDefined reports whether NearestKm is meaningful, i.e. the collection
// had at least one record.
func (r Result) NearestDefined() bool {
	return !math.IsInf(r.NearestKm, 1)
}

// Query computes proximity features for a point against a facility
// collection. idField names the column whose values identify facilities in
// the result; records with an empty identifier still count but contribute no
// ID. Sub-category restriction (e.g. primary vs secondary schools) is the
// caller's job: filter the collection first and query once per sub-category.
//
// Distances are computed into a per-call slice and never written back onto
// the shared collection; Query is safe for concurrent use.
func Query(point geo.Coordinate, facilities *models.Collection, radiusKm float64, idField string) (Result, error) {
	if math.IsNaN(radiusKm) || radiusKm <= 0 {
		return Result{}, fmt.Errorf("%w: got %v", ErrInvalidRadius, radiusKm)
	}
	if facilities.Len() == 0 {
		return Result{NearestKm: math.Inf(1), IDs: []string{}}, nil
	}

	type measured struct {
		km     float64
		record models.Record
	}
	within := make([]measured, 0, facilities.Len())
	nearest := math.Inf(1)
	for _, rec := range facilities.Records {
		km := geo.DistanceKm(point, rec.Coord)
		if km < nearest {
			nearest = km
		}
		if km <= radiusKm {
			within = append(within, measured{km: km, record: rec})
		}
	}

	sort.SliceStable(within, func(i, j int) bool {
		return within[i].km < within[j].km
	})

	ids := make([]string, 0, len(within))
	seen := make(map[string]struct{}, len(within))
	for _, m := range within {
		id := m.record.Field(idField)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return Result{
		Count:     len(within),
		NearestKm: math.Round(nearest*10) / 10,
		IDs:       ids,
	}, nil
}
