// Package encoder implements mean-target encoding of categorical values:
// categories are ranked by the historical mean of an associated numeric
// target, and the rank is used as the numeric feature value.
package encoder

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyInput reports a Fit call with no samples.
	ErrEmptyInput = errors.New("encoder: empty fit input")

	// ErrNotFitted reports Transform/InverseTransform before a successful Fit.
	ErrNotFitted = errors.New("encoder: not fitted")

	// ErrUnknownCategory reports a category that was not seen during Fit.
	ErrUnknownCategory = errors.New("encoder: unknown category")

	// ErrUnknownRank reports a rank outside the fitted range.
	ErrUnknownRank = errors.New("encoder: unknown rank")

	// ErrInvalidTable reports a persisted encoding table whose ranks are not
	// a dense permutation of 0..N-1.
	ErrInvalidTable = errors.New("encoder: invalid encoding table")
)

// Sample is one fitting observation: a category label and its numeric target
// (historical resale price, for the town encoder).
type Sample struct {
	Category string
	Target   float64
}

// MeanEncoder maps category names to integer ranks ordered by ascending mean
// target value: the category with the lowest mean gets rank 0. Encoding and
// inverse lookup stay mutually consistent bijections. The zero value is
// unfitted; Fit it or build one from a persisted table with Load.
type MeanEncoder struct {
	column   string
	encoding map[string]int
	inverse  []string
}

// NewMeanEncoder returns an unfitted encoder for the named categorical column.
func NewMeanEncoder(column string) *MeanEncoder {
	return &MeanEncoder{column: column}
}

// Column returns the name of the categorical column this encoder was built for.
func (e *MeanEncoder) Column() string {
	return e.column
}

// Fit groups samples by category, computes the arithmetic mean of the target
// per category, and assigns rank = position in ascending-mean order. Ties in
// mean value keep the categories' first-occurrence order; identical input
// always produces the identical table. Fit fails with ErrEmptyInput when no
// samples are given; the encoder then stays in its previous state.
func (e *MeanEncoder) Fit(samples []Sample) error {
	if len(samples) == 0 {
		return ErrEmptyInput
	}

	type group struct {
		sum   float64
		count int
	}
	groups := make(map[string]*group)
	var categories []string // first-occurrence order
	for _, s := range samples {
		g, ok := groups[s.Category]
		if !ok {
			g = &group{}
			groups[s.Category] = g
			categories = append(categories, s.Category)
		}
		g.sum += s.Target
		g.count++
	}

	mean := func(category string) float64 {
		g := groups[category]
		return g.sum / float64(g.count)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return mean(categories[i]) < mean(categories[j])
	})

	encoding := make(map[string]int, len(categories))
	for rank, category := range categories {
		encoding[category] = rank
	}
	e.encoding = encoding
	e.inverse = categories
	return nil
}

// Transform returns the rank for a category seen during Fit.
func (e *MeanEncoder) Transform(category string) (int, error) {
	if e.encoding == nil {
		return 0, ErrNotFitted
	}
	rank, ok := e.encoding[category]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return rank, nil
}

// InverseTransform returns the category holding the given rank.
func (e *MeanEncoder) InverseTransform(rank int) (string, error) {
	if e.encoding == nil {
		return "", ErrNotFitted
	}
	if rank < 0 || rank >= len(e.inverse) {
		return "", fmt.Errorf("%w: %d not in [0, %d)", ErrUnknownRank, rank, len(e.inverse))
	}
	return e.inverse[rank], nil
}

// Categories returns the fitted categories in rank order. The slice is a
// copy; mutating it does not affect the encoder.
func (e *MeanEncoder) Categories() []string {
	out := make([]string, len(e.inverse))
	copy(out, e.inverse)
	return out
}
