// Package store persists the single editable setting.
//
// A Slot holds the value in memory and delegates durability to a Backend:
// a plain text file (the default) or a row in a sqlite database.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// Open builds a Slot for the named backend kind.
func Open(ctx context.Context, kind, path, slot string, opts ...Option) (*Slot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path must not be empty")
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindFile:
		return NewSlot(NewFileBackend(path), opts...), nil
	case KindSQLite:
		if strings.TrimSpace(slot) == "" {
			return nil, fmt.Errorf("sqlite store requires a slot name")
		}
		backend, err := OpenSQLite(ctx, path, slot)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return NewSlot(backend, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", kind)
	}
}
