package storage

import (
	"context"
	"errors"
)

const (
	// SlotServers holds the serialized entry collection.
	SlotServers = "servers"
	// SlotTheme holds the theme preference scalar ("dark" or "light").
	SlotTheme = "theme"
)

// ErrNotFound is returned when a slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Slots is a tiny named-slot persistence layer: whole values are read
// and overwritten wholesale, there are no partial writes and no
// coordination between slots. Callers treat it as best-effort.
type Slots interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}
