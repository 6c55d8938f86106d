//go:build integration

package repository

import (
	"context"
	"testing"

	"resale-api/internal/dataset"
	"resale-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	// Create test schema matching the importer's tables
	_, err = pool.Exec(ctx, `
		CREATE TABLE facilities (
			id BIGSERIAL PRIMARY KEY,
			collection TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL,
			fields JSONB NOT NULL DEFAULT '{}'::jsonb
		);

		CREATE INDEX facilities_collection_idx ON facilities (collection);

		CREATE TABLE resale_index (
			quarter TEXT PRIMARY KEY,
			value DOUBLE PRECISION NOT NULL
		);

		-- Insert test data
		INSERT INTO facilities (collection, lat, lon, fields) VALUES
		('schools', 1.4427, 103.8001, '{"school_name": "ADMIRALTY PRIMARY SCHOOL", "mainlevel_code": "PRIMARY"}'),
		('schools', 1.4452, 103.7973, '{"school_name": "ADMIRALTY SECONDARY SCHOOL", "mainlevel_code": "SECONDARY"}'),
		('hawker_markets', 1.3242, 103.8141, '{"name": "Adam Road Food Centre"}'),
		('train_stations', 1.4406, 103.8009, '{"mrt_station_english": "Admiralty"}'),
		('street_blocks', 1.4382, 103.7890, '{"town": "WOODLANDS"}');

		INSERT INTO resale_index (quarter, value) VALUES
		('2025Q1', 194.2),
		('2025Q2', 195.0);
	`)
	require.NoError(t, err)

	return pool
}

func TestPostgres_LoadCollection(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	source := NewPostgres(pool)
	ctx := context.Background()

	schools, err := source.LoadCollection(ctx, models.CollectionSchools)
	require.NoError(t, err)
	require.Equal(t, 2, schools.Len())

	first := schools.Records[0]
	assert.InDelta(t, 1.4427, first.Coord.Lat, 1e-9)
	assert.InDelta(t, 103.8001, first.Coord.Lon, 1e-9)
	assert.Equal(t, "ADMIRALTY PRIMARY SCHOOL", first.Field(models.FieldSchoolName))
	assert.Equal(t, models.MainLevelPrimary, first.Field(models.FieldMainLevel))

	primary := schools.FilterField(models.FieldMainLevel, models.MainLevelPrimary)
	assert.Equal(t, 1, primary.Len())
}

func TestPostgres_LoadCollectionEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	source := NewPostgres(pool)

	_, err := source.LoadCollection(context.Background(), "unknown")
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestPostgres_LoadReferenceData(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	source := NewPostgres(pool)

	data, err := source.LoadReferenceData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, data.Schools.Len())
	assert.Equal(t, 1, data.Hawkers.Len())
	assert.Equal(t, 1, data.Stations.Len())
	assert.Equal(t, 1, data.StreetBlocks.Len())

	value, err := data.ResaleIndex.Lookup("2025Q1")
	require.NoError(t, err)
	assert.InDelta(t, 194.2, value, 1e-9)

	_, err = data.ResaleIndex.Lookup("1990Q1")
	assert.ErrorIs(t, err, models.ErrQuarterNotFound)
}
