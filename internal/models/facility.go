package models

import (
	"errors"
	"fmt"
	"time"

	"resale-api/internal/geo"
)

// Column names of the historical reference datasets. Loaders and feature
// assembly must agree on these; they mirror the upstream CSV headers.
const (
	FieldSchoolName  = "school_name"
	FieldMainLevel   = "mainlevel_code"
	FieldHawkerName  = "name"
	FieldStationName = "mrt_station_english"
	FieldTown        = "town"
)

// Values of the school mainlevel_code column.
const (
	MainLevelPrimary   = "PRIMARY"
	MainLevelSecondary = "SECONDARY"
)

// Record is one row of a facility dataset: a geographic point plus the raw
// column values it was loaded with. Records are read-only after loading;
// per-query derived values (distances) never live here.
type Record struct {
	Coord  geo.Coordinate
	Fields map[string]string
}

// Field returns the value of the named column, or "" when absent.
func (r Record) Field(name string) string {
	return r.Fields[name]
}

// Collection is an ordered sequence of facility records sharing a schema.
// One collection exists per facility type. Collections are immutable at
// query time and safe for concurrent reads.
type Collection struct {
	Name    string
	Records []Record
}

// Len returns the number of records.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// FilterField returns a derived collection holding only the records whose
// named field equals value, preserving order. Record values are shared with
// the parent.
func (c *Collection) FilterField(field, value string) *Collection {
	filtered := &Collection{Name: fmt.Sprintf("%s[%s=%s]", c.Name, field, value)}
	for _, r := range c.Records {
		if r.Field(field) == value {
			filtered.Records = append(filtered.Records, r)
		}
	}
	return filtered
}

// ErrQuarterNotFound reports a resale-index lookup for a quarter the table
// does not cover.
var ErrQuarterNotFound = errors.New("models: quarter not found in resale index")

// IndexEntry is one row of the quarterly resale price index.
type IndexEntry struct {
	Quarter string
	Value   float64
}

// IndexTable is the quarterly resale price index, ordered as loaded.
type IndexTable struct {
	Entries []IndexEntry
}

// Lookup returns the index value for a quarter key such as "2025Q3".
func (t *IndexTable) Lookup(quarter string) (float64, error) {
	for _, e := range t.Entries {
		if e.Quarter == quarter {
			return e.Value, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrQuarterNotFound, quarter)
}

// QuarterOf formats the quarter key the resale index is keyed by.
func QuarterOf(t time.Time) string {
	return fmt.Sprintf("%dQ%d", t.Year(), (int(t.Month())-1)/3+1)
}

// ReferenceData bundles the reference datasets loaded once per process and
// treated as immutable afterwards.
type ReferenceData struct {
	Schools      *Collection
	Hawkers      *Collection
	Stations     *Collection
	StreetBlocks *Collection
	ResaleIndex  *IndexTable
}

// Collection returns a facility collection by its public name.
func (d *ReferenceData) Collection(name string) (*Collection, bool) {
	switch name {
	case CollectionSchools:
		return d.Schools, d.Schools != nil
	case CollectionHawkers:
		return d.Hawkers, d.Hawkers != nil
	case CollectionStations:
		return d.Stations, d.Stations != nil
	case CollectionStreetBlocks:
		return d.StreetBlocks, d.StreetBlocks != nil
	}
	return nil, false
}

// Public facility collection names, also used as dataset file stems.
const (
	CollectionSchools      = "schools"
	CollectionHawkers      = "hawker_markets"
	CollectionStations     = "train_stations"
	CollectionStreetBlocks = "street_blocks"
)
