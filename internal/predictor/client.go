// Package predictor calls the deployed resale price model over HTTP.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

var (
	// ErrUnavailable reports that the serving endpoint could not produce a
	// price, after retries where the failure was transient.
	ErrUnavailable = errors.New("predictor: unavailable")

	// ErrBadResponse reports a predictor reply that does not carry a price.
	ErrBadResponse = errors.New("predictor: malformed response")
)

const (
	defaultTimeout   = 10 * time.Second
	defaultRetryBase = 500 * time.Millisecond
)

// Client posts feature vectors to the model serving endpoint.
type Client struct {
	endpoint   string
	client     *http.Client
	maxRetries uint64
	retryBase  time.Duration
	log        zerolog.Logger
}

// Options configures a predictor Client.
type Options struct {
	Endpoint   string
	Timeout    time.Duration
	MaxRetries uint64
	RetryBase  time.Duration
	Logger     zerolog.Logger
}

// New creates a predictor client for the given serving endpoint.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RetryBase == 0 {
		opts.RetryBase = defaultRetryBase
	}
	return &Client{
		endpoint:   opts.Endpoint,
		client:     &http.Client{Timeout: opts.Timeout},
		maxRetries: opts.MaxRetries,
		retryBase:  opts.RetryBase,
		log:        opts.Logger,
	}
}

// The serving endpoint accepts a batch of instances and answers with a bare
// JSON array of prices, one per instance.
type predictRequest struct {
	Instances [][]float64 `json:"instances"`
}

// Predict sends one feature vector and returns the predicted price. Transient
// failures are retried with exponential backoff, client errors are not.
func (c *Client) Predict(ctx context.Context, features []float64) (float64, error) {
	payload, err := json.Marshal(predictRequest{Instances: [][]float64{features}})
	if err != nil {
		return 0, fmt.Errorf("predictor: encode request: %w", err)
	}

	var prices []float64
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			c.log.Warn().Err(err).Msg("predictor call failed, retrying")
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			c.log.Warn().Int("status", resp.StatusCode).Msg("predictor call failed, retrying")
			return err
		}

		if err := json.Unmarshal(body, &prices); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", ErrBadResponse, err))
		}
		if len(prices) == 0 {
			return backoff.Permanent(fmt.Errorf("%w: empty prediction list", ErrBadResponse))
		}
		return nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.retryBase
	policy := backoff.WithContext(backoff.WithMaxRetries(expo, c.maxRetries), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return prices[0], nil
}
