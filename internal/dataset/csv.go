// Package dataset decodes the reference CSVs into facility collections and
// the resale price index.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"resale-api/internal/geo"
	"resale-api/internal/models"
)

var (
	// ErrEmptyDataset reports a dataset with a header but no records.
	ErrEmptyDataset = errors.New("dataset: no records")

	// ErrMissingColumn reports a dataset without a usable coordinate column.
	ErrMissingColumn = errors.New("dataset: required column missing")
)

// Coordinate column names the historical datasets use: either a single
// "(lat, lon)" string column or a pair of numeric columns.
const (
	colLatLong   = "latlong"
	colLatitude  = "latitude"
	colLongitude = "longitude"
)

// DecodeCollection reads one facility CSV. The first row is the header;
// coordinates come from the "latlong" column when present, otherwise from
// "latitude"+"longitude". All other columns are kept as record fields so the
// identifier column can be chosen per query.
func DecodeCollection(name string, r io.Reader) (*models.Collection, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s header: %w", name, err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	latlongCol, hasLatLong := idx[colLatLong]
	latCol, hasLat := idx[colLatitude]
	lonCol, hasLon := idx[colLongitude]
	if !hasLatLong && !(hasLat && hasLon) {
		return nil, fmt.Errorf("%w: %s needs %q or %q+%q", ErrMissingColumn, name, colLatLong, colLatitude, colLongitude)
	}

	collection := &models.Collection{Name: name}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read %s row %d: %w", name, row, err)
		}

		var coord geo.Coordinate
		if hasLatLong {
			coord, err = geo.ParseCoordinate(record[latlongCol])
		} else {
			coord, err = parseLatLonColumns(record[latCol], record[lonCol])
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %s row %d: %w", name, row, err)
		}

		fields := make(map[string]string, len(header))
		for column, i := range idx {
			switch column {
			case colLatLong, colLatitude, colLongitude:
				continue
			}
			fields[column] = strings.TrimSpace(record[i])
		}
		collection.Records = append(collection.Records, models.Record{Coord: coord, Fields: fields})
	}

	if len(collection.Records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, name)
	}
	return collection, nil
}

func parseLatLonColumns(latStr, lonStr string) (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: invalid latitude %q", geo.ErrMalformedCoordinate, latStr)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: invalid longitude %q", geo.ErrMalformedCoordinate, lonStr)
	}
	return geo.NewCoordinate(lat, lon)
}

// DecodeIndex reads the quarterly resale price index CSV with columns
// "quarter" and "index".
func DecodeIndex(r io.Reader) (*models.IndexTable, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read index header: %w", err)
	}

	quarterCol, indexCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "quarter":
			quarterCol = i
		case "index":
			indexCol = i
		}
	}
	if quarterCol < 0 || indexCol < 0 {
		return nil, fmt.Errorf("%w: resale index needs \"quarter\" and \"index\"", ErrMissingColumn)
	}

	table := &models.IndexTable{}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read index row %d: %w", row, err)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[indexCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: index row %d: invalid value %q", row, record[indexCol])
		}
		table.Entries = append(table.Entries, models.IndexEntry{
			Quarter: strings.TrimSpace(record[quarterCol]),
			Value:   value,
		})
	}

	if len(table.Entries) == 0 {
		return nil, fmt.Errorf("%w: resale index", ErrEmptyDataset)
	}
	return table, nil
}
