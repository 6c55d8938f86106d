package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"resale-api/internal/config"
	"resale-api/internal/dataset"
	"resale-api/internal/encoder"
	"resale-api/internal/models"

	"github.com/jackc/pgx/v5"
)

var collectionFiles = []struct {
	name string
	file string
}{
	{models.CollectionSchools, "schools.csv"},
	{models.CollectionHawkers, "hawker_markets.csv"},
	{models.CollectionStations, "train_stations.csv"},
	{models.CollectionStreetBlocks, "street_blocks.csv"},
}

func main() {
	dataDir := flag.String("data", "", "Directory containing the reference CSV files")
	fitFile := flag.String("fit", "", "Transactions CSV to fit the town encoder from")
	outFile := flag.String("out", "meanencoder.json", "Where to write the fitted encoder")
	flag.Parse()

	if *fitFile != "" {
		if err := fitEncoder(*fitFile, *outFile); err != nil {
			fmt.Printf("Error fitting encoder: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote town encoder to %s\n", *outFile)
		return
	}

	if *dataDir == "" {
		fmt.Println("Error: --data or --fit flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting import from directory: %s\n", *dataDir)

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	// Ensure tables exist
	if err := createTablesIfNotExist(conn); err != nil {
		fmt.Printf("Error creating tables: %v\n", err)
		os.Exit(1)
	}

	// Import records
	facilities, err := importCollections(conn, *dataDir)
	if err != nil {
		fmt.Printf("Error importing collections: %v\n", err)
		os.Exit(1)
	}

	quarters, err := importResaleIndex(conn, *dataDir)
	if err != nil {
		fmt.Printf("Error importing resale index: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	if err := verifyImport(conn, facilities, quarters); err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d facility records and %d index quarters\n", facilities, quarters)
}

func createTablesIfNotExist(conn *pgx.Conn) error {
	query := `
	CREATE TABLE IF NOT EXISTS facilities (
		id BIGSERIAL PRIMARY KEY,
		collection TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		fields JSONB NOT NULL DEFAULT '{}'::jsonb
	);
	CREATE INDEX IF NOT EXISTS facilities_collection_idx ON facilities (collection);

	CREATE TABLE IF NOT EXISTS resale_index (
		quarter TEXT PRIMARY KEY,
		value DOUBLE PRECISION NOT NULL
	);
	`
	_, err := conn.Exec(context.Background(), query)
	return err
}

func importCollections(conn *pgx.Conn, dir string) (int64, error) {
	ctx := context.Background()

	var total int64
	for _, target := range collectionFiles {
		f, err := os.Open(filepath.Join(dir, target.file))
		if err != nil {
			return 0, fmt.Errorf("failed to open %s: %w", target.file, err)
		}
		collection, err := dataset.DecodeCollection(target.name, f)
		f.Close()
		if err != nil {
			return 0, err
		}

		// Replace any previous import of this collection
		if _, err := conn.Exec(ctx, "DELETE FROM facilities WHERE collection = $1", target.name); err != nil {
			return 0, fmt.Errorf("failed to clear collection %s: %w", target.name, err)
		}

		copied, err := conn.CopyFrom(
			ctx,
			pgx.Identifier{"facilities"},
			[]string{"collection", "lat", "lon", "fields"},
			pgx.CopyFromSlice(collection.Len(), func(i int) ([]interface{}, error) {
				r := collection.Records[i]
				return []interface{}{target.name, r.Coord.Lat, r.Coord.Lon, r.Fields}, nil
			}),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to copy collection %s: %w", target.name, err)
		}

		fmt.Printf("Imported %d %s records\n", copied, target.name)
		total += copied
	}

	return total, nil
}

func importResaleIndex(conn *pgx.Conn, dir string) (int64, error) {
	ctx := context.Background()

	f, err := os.Open(filepath.Join(dir, "resale_index.csv"))
	if err != nil {
		return 0, fmt.Errorf("failed to open resale_index.csv: %w", err)
	}
	table, err := dataset.DecodeIndex(f)
	f.Close()
	if err != nil {
		return 0, err
	}

	if _, err := conn.Exec(ctx, "DELETE FROM resale_index"); err != nil {
		return 0, fmt.Errorf("failed to clear resale index: %w", err)
	}

	copied, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"resale_index"},
		[]string{"quarter", "value"},
		pgx.CopyFromSlice(len(table.Entries), func(i int) ([]interface{}, error) {
			e := table.Entries[i]
			return []interface{}{e.Quarter, e.Value}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy resale index: %w", err)
	}

	return copied, nil
}

func verifyImport(conn *pgx.Conn, expectedFacilities, expectedQuarters int64) error {
	ctx := context.Background()

	var facilities int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM facilities").Scan(&facilities); err != nil {
		return fmt.Errorf("failed to count facilities: %w", err)
	}
	if facilities != expectedFacilities {
		return fmt.Errorf("facility count mismatch: expected %d, got %d", expectedFacilities, facilities)
	}

	var quarters int64
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM resale_index").Scan(&quarters); err != nil {
		return fmt.Errorf("failed to count index quarters: %w", err)
	}
	if quarters != expectedQuarters {
		return fmt.Errorf("quarter count mismatch: expected %d, got %d", expectedQuarters, quarters)
	}

	// Check a sample record
	var town string
	err := conn.QueryRow(ctx, "SELECT fields->>'town' FROM facilities WHERE collection = $1 LIMIT 1", models.CollectionStreetBlocks).Scan(&town)
	if err != nil {
		return fmt.Errorf("failed to check sample record: %w", err)
	}
	fmt.Printf("Sample street block town: %s\n", town)

	return nil
}

func fitEncoder(transactionsFile, outFile string) error {
	f, err := os.Open(transactionsFile)
	if err != nil {
		return fmt.Errorf("failed to open transactions file: %w", err)
	}
	defer f.Close()

	samples, err := readSamples(f)
	if err != nil {
		return err
	}

	fmt.Printf("Fitting town encoder on %d transactions\n", len(samples))

	enc := encoder.NewMeanEncoder(models.FieldTown)
	if err := enc.Fit(samples); err != nil {
		return fmt.Errorf("failed to fit encoder: %w", err)
	}

	out, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	return enc.Save(out)
}

func readSamples(r io.Reader) ([]encoder.Sample, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	townCol, priceCol := -1, -1
	for i, h := range header {
		switch h {
		case "town":
			townCol = i
		case "resale_price":
			priceCol = i
		}
	}
	if townCol < 0 || priceCol < 0 {
		return nil, errors.New("transactions file needs \"town\" and \"resale_price\" columns")
	}

	var samples []encoder.Sample
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		price, err := strconv.ParseFloat(record[priceCol], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid resale_price: %s", record[priceCol])
		}
		samples = append(samples, encoder.Sample{Category: record[townCol], Target: price})
	}

	return samples, nil
}
