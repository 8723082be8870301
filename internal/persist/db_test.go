package persist

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ryholmdahl/groblins/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadSnapshotEmpty(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.LoadSnapshot(); !errors.Is(err, ErrNoSave) {
		t.Fatalf("expected ErrNoSave from an empty database, got %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := openTestDB(t)

	cfg := world.DefaultConfig()
	cfg.Width = 24
	cfg.Height = 16
	w, err := world.New(cfg, world.Deps{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Generate(world.GenOptions{Groblins: 2, Edibles: 4})
	for i := 0; i < 5; i++ {
		w.Tick(1.0 / 15)
	}
	snap := w.Snapshot()

	if err := db.SaveSnapshot(snap, 12345); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	loaded, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Tick != snap.Tick || loaded.Seed != snap.Seed {
		t.Fatalf("loaded header differs: %d/%q vs %d/%q",
			loaded.Tick, loaded.Seed, snap.Tick, snap.Seed)
	}
	if len(loaded.Entities) != len(snap.Entities) {
		t.Fatalf("entity count differs: %d vs %d", len(loaded.Entities), len(snap.Entities))
	}
}

func TestSaveOverwritesPrevious(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveSnapshot(world.Snapshot{Tick: 1, Seed: "a"}, 1); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := db.SaveSnapshot(world.Snapshot{Tick: 9, Seed: "b"}, 2); err != nil {
		t.Fatalf("second save: %v", err)
	}
	loaded, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if loaded.Tick != 9 || loaded.Seed != "b" {
		t.Fatalf("expected the second save, got tick %d seed %q", loaded.Tick, loaded.Seed)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveMeta("version", "1"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if err := db.SaveMeta("version", "2"); err != nil {
		t.Fatalf("SaveMeta overwrite: %v", err)
	}
	got, err := db.GetMeta("version")
	if err != nil {
		t.Fatalf("GetMeta: %v", err)
	}
	if got != "2" {
		t.Fatalf("expected overwritten value, got %q", got)
	}
}
