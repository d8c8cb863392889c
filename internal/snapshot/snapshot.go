// Package snapshot encodes full store exports for persistence and backups.
package snapshot

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vistalabs/vista/internal/domain"
)

// FormatVersion is written into every encoded snapshot.
// Increment this when domain.Snapshot changes incompatibly.
const FormatVersion = 1

// ContentType is the media type used when snapshots are uploaded
const ContentType = "application/msgpack"

// ErrUnsupportedVersion is returned when decoding a snapshot written by a newer format
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

type envelope struct {
	Version  int             `msgpack:"v"`
	Snapshot domain.Snapshot `msgpack:"s"`
}

// Encode serializes a snapshot
func Encode(s domain.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(envelope{Version: FormatVersion, Snapshot: s}); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses data produced by Encode. Nil maps in the result are
// initialized so callers can write to them.
func Decode(data []byte) (domain.Snapshot, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if env.Version > FormatVersion || env.Version < 1 {
		return domain.Snapshot{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	s := env.Snapshot
	if s.Ingredients == nil {
		s.Ingredients = make(map[string]domain.Ingredient)
	}
	if s.Packaging == nil {
		s.Packaging = make(map[string]domain.Packaging)
	}
	if s.Products == nil {
		s.Products = make(map[string]domain.Product)
	}
	return s, nil
}
