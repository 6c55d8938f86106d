package repository

import (
	"context"
	"fmt"

	"resale-api/internal/dataset"
	"resale-api/internal/geo"
	"resale-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Source loads the reference datasets the API serves queries from. The
// bucket source reads the published CSVs; the Postgres source reads the
// tables the importer fills.
type Source interface {
	LoadReferenceData(ctx context.Context) (*models.ReferenceData, error)
}

// Postgres reads reference data from PostgreSQL
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates a new PostgreSQL reference data source
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// LoadCollection reads all records of one facility collection in insert
// order.
func (r *Postgres) LoadCollection(ctx context.Context, name string) (*models.Collection, error) {
	sql := `
		SELECT
			lat,
			lon,
			fields
		FROM facilities
		WHERE collection = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql, name)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query collection %s: %w", name, err)
	}
	defer rows.Close()

	collection := &models.Collection{Name: name}
	for rows.Next() {
		var (
			lat, lon float64
			fields   map[string]string
		)
		if err := rows.Scan(&lat, &lon, &fields); err != nil {
			return nil, fmt.Errorf("repository: failed to scan %s record: %w", name, err)
		}

		coord, err := geo.NewCoordinate(lat, lon)
		if err != nil {
			return nil, fmt.Errorf("repository: %s record: %w", name, err)
		}
		collection.Records = append(collection.Records, models.Record{Coord: coord, Fields: fields})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating %s rows: %w", name, err)
	}

	if collection.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", dataset.ErrEmptyDataset, name)
	}

	return collection, nil
}

// LoadIndex reads the quarterly resale price index.
func (r *Postgres) LoadIndex(ctx context.Context) (*models.IndexTable, error) {
	sql := `
		SELECT
			quarter,
			value
		FROM resale_index
		ORDER BY quarter
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query resale index: %w", err)
	}
	defer rows.Close()

	table := &models.IndexTable{}
	for rows.Next() {
		var entry models.IndexEntry
		if err := rows.Scan(&entry.Quarter, &entry.Value); err != nil {
			return nil, fmt.Errorf("repository: failed to scan index entry: %w", err)
		}
		table.Entries = append(table.Entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating index rows: %w", err)
	}

	if len(table.Entries) == 0 {
		return nil, fmt.Errorf("%w: resale index", dataset.ErrEmptyDataset)
	}

	return table, nil
}

// LoadReferenceData loads the four facility collections and the price index.
func (r *Postgres) LoadReferenceData(ctx context.Context) (*models.ReferenceData, error) {
	data := &models.ReferenceData{}

	targets := []struct {
		name string
		dst  **models.Collection
	}{
		{models.CollectionSchools, &data.Schools},
		{models.CollectionHawkers, &data.Hawkers},
		{models.CollectionStations, &data.Stations},
		{models.CollectionStreetBlocks, &data.StreetBlocks},
	}
	for _, target := range targets {
		collection, err := r.LoadCollection(ctx, target.name)
		if err != nil {
			return nil, err
		}
		*target.dst = collection
	}

	index, err := r.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}
	data.ResaleIndex = index

	return data, nil
}
