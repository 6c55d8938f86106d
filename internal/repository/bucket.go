package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"resale-api/internal/dataset"
	"resale-api/internal/encoder"
	"resale-api/internal/models"
)

// Object names published in the data bucket.
const (
	objectSchools      = "schools.csv"
	objectHawkers      = "hawker_markets.csv"
	objectStations     = "train_stations.csv"
	objectStreetBlocks = "street_blocks.csv"
	objectResaleIndex  = "resale_index.csv"
	objectEncoder      = "meanencoder.json"
)

const (
	defaultBucketTimeout = 10 * time.Second
	defaultRetryBase     = 500 * time.Millisecond
)

// Bucket loads reference data over HTTP from a public data bucket.
type Bucket struct {
	baseURL    string
	client     *http.Client
	maxRetries uint64
	retryBase  time.Duration
	log        zerolog.Logger
}

// BucketOptions configures a Bucket source.
type BucketOptions struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries uint64
	RetryBase  time.Duration
	Logger     zerolog.Logger
}

// NewBucket creates an HTTP bucket source. Fetches retry transient failures
// with exponential backoff, up to MaxRetries additional attempts.
func NewBucket(opts BucketOptions) *Bucket {
	if opts.Timeout == 0 {
		opts.Timeout = defaultBucketTimeout
	}
	if opts.RetryBase == 0 {
		opts.RetryBase = defaultRetryBase
	}
	return &Bucket{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		client:     &http.Client{Timeout: opts.Timeout},
		maxRetries: opts.MaxRetries,
		retryBase:  opts.RetryBase,
		log:        opts.Logger,
	}
}

func (b *Bucket) fetch(ctx context.Context, object string) ([]byte, error) {
	url := b.baseURL + "/" + object

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := b.client.Do(req)
		if err != nil {
			b.log.Warn().Err(err).Str("object", object).Msg("bucket fetch failed, retrying")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status %d", resp.StatusCode)
			// Client errors will not heal on retry.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			b.log.Warn().Int("status", resp.StatusCode).Str("object", object).Msg("bucket fetch failed, retrying")
			return err
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = b.retryBase
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, b.maxRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("repository: fetch %s: %w", object, err)
	}
	return body, nil
}

func (b *Bucket) fetchCollection(ctx context.Context, name, object string) (*models.Collection, error) {
	body, err := b.fetch(ctx, object)
	if err != nil {
		return nil, err
	}
	return dataset.DecodeCollection(name, bytes.NewReader(body))
}

// LoadReferenceData fetches the four facility CSVs and the resale index.
func (b *Bucket) LoadReferenceData(ctx context.Context) (*models.ReferenceData, error) {
	data := &models.ReferenceData{}

	targets := []struct {
		name   string
		object string
		dst    **models.Collection
	}{
		{models.CollectionSchools, objectSchools, &data.Schools},
		{models.CollectionHawkers, objectHawkers, &data.Hawkers},
		{models.CollectionStations, objectStations, &data.Stations},
		{models.CollectionStreetBlocks, objectStreetBlocks, &data.StreetBlocks},
	}
	for _, target := range targets {
		collection, err := b.fetchCollection(ctx, target.name, target.object)
		if err != nil {
			return nil, err
		}
		*target.dst = collection
		b.log.Info().Str("collection", target.name).Int("records", collection.Len()).Msg("loaded collection")
	}

	body, err := b.fetch(ctx, objectResaleIndex)
	if err != nil {
		return nil, err
	}
	index, err := dataset.DecodeIndex(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	data.ResaleIndex = index
	b.log.Info().Int("quarters", len(index.Entries)).Msg("loaded resale index")

	return data, nil
}

// LoadEncoder fetches and validates the town encoding artifact.
func (b *Bucket) LoadEncoder(ctx context.Context) (*encoder.MeanEncoder, error) {
	body, err := b.fetch(ctx, objectEncoder)
	if err != nil {
		return nil, err
	}
	return encoder.Load(bytes.NewReader(body))
}
