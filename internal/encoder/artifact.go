package encoder

import (
	"encoding/json"
	"fmt"
	"io"
)

// table is the persisted JSON form of a fitted encoder.
type table struct {
	Column   string         `json:"column"`
	Encoding map[string]int `json:"encoding"`
}

// Save writes the fitted encoding table as JSON. Fails with ErrNotFitted on
// an unfitted encoder.
func (e *MeanEncoder) Save(w io.Writer) error {
	if e.encoding == nil {
		return ErrNotFitted
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(table{Column: e.column, Encoding: e.encoding}); err != nil {
		return fmt.Errorf("encoder: write table: %w", err)
	}
	return nil
}

// Load reads a table written by Save and returns a fitted encoder. The table
// is validated before use: ranks must form a dense permutation of 0..N-1, and
// anything else fails with ErrInvalidTable.
func Load(r io.Reader) (*MeanEncoder, error) {
	var t table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("encoder: read table: %w", err)
	}
	if len(t.Encoding) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTable)
	}

	inverse := make([]string, len(t.Encoding))
	seen := make([]bool, len(t.Encoding))
	for category, rank := range t.Encoding {
		if rank < 0 || rank >= len(t.Encoding) {
			return nil, fmt.Errorf("%w: rank %d out of range for %d categories", ErrInvalidTable, rank, len(t.Encoding))
		}
		if seen[rank] {
			return nil, fmt.Errorf("%w: duplicate rank %d", ErrInvalidTable, rank)
		}
		seen[rank] = true
		inverse[rank] = category
	}

	encoding := make(map[string]int, len(t.Encoding))
	for category, rank := range t.Encoding {
		encoding[category] = rank
	}
	return &MeanEncoder{column: t.Column, encoding: encoding, inverse: inverse}, nil
}
