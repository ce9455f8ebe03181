package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSlotsRoundTrip(t *testing.T) {
	slots, err := NewFileSlots(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSlots() error = %v", err)
	}
	ctx := context.Background()

	payload := []byte(`[{"id":"a"}]`)
	if err := slots.Write(ctx, SlotServers, payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := slots.Read(ctx, SlotServers)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Read() = %q, want %q", got, payload)
	}
}

func TestFileSlotsReadMissing(t *testing.T) {
	slots, err := NewFileSlots(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileSlots() error = %v", err)
	}

	_, err = slots.Read(context.Background(), SlotTheme)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() on missing slot = %v, want ErrNotFound", err)
	}
}

func TestFileSlotsOverwrite(t *testing.T) {
	dir := t.TempDir()
	slots, err := NewFileSlots(dir)
	if err != nil {
		t.Fatalf("NewFileSlots() error = %v", err)
	}
	ctx := context.Background()

	if err := slots.Write(ctx, SlotTheme, []byte(`"dark"`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := slots.Write(ctx, SlotTheme, []byte(`"light"`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := slots.Read(ctx, SlotTheme)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != `"light"` {
		t.Errorf("Read() after overwrite = %q, want %q", got, `"light"`)
	}

	// No temp files left behind.
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("glob error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("found leftover temp files: %v", matches)
	}
}

func TestNewFileSlotsCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	if _, err := NewFileSlots(dir); err != nil {
		t.Fatalf("NewFileSlots() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}
