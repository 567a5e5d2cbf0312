package snapshot_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"beadcolors/internal/catalog"
	"beadcolors/internal/palette"
	"beadcolors/internal/snapshot"
)

func openStore(t *testing.T) *snapshot.Store {
	t.Helper()
	store, err := snapshot.Open(context.Background(), filepath.Join(t.TempDir(), "state", "snapshots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func saveRun(t *testing.T, store *snapshot.Store, id string, started time.Time, libs []catalog.Library) {
	t.Helper()
	run := snapshot.Run{
		ID:         id,
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Source:     "/dumps",
		Output:     "/out/beadColors.ts",
		Format:     "typescript",
	}
	for _, lib := range libs {
		run.TotalColors += len(lib.Colors)
		run.Brands = append(run.Brands, snapshot.BrandResult{Brand: lib.Brand, Colors: len(lib.Colors), Anchors: len(lib.Colors)})
	}
	if err := store.SaveRun(context.Background(), run, libs); err != nil {
		t.Fatalf("SaveRun %s: %v", id, err)
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	libs := []catalog.Library{
		{Brand: "perler", Name: "Perler", Colors: []palette.Color{
			palette.NewColor("P01", "白色", "P01", "F1F1F1"),
			palette.NewColor("P02", "Black", "P02", "000000"),
		}},
		{Brand: "hama", Name: "Hama"},
	}
	saveRun(t, store, "run-1", started, libs)

	run, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !run.StartedAt.Equal(started) || run.TotalColors != 2 || run.Format != "typescript" {
		t.Fatalf("unexpected run %+v", run)
	}
	if len(run.Brands) != 2 || run.Brands[0].Brand != "perler" || run.Brands[1].Brand != "hama" {
		t.Fatalf("unexpected brand results %+v", run.Brands)
	}

	colors, err := store.Colors(ctx, "run-1", "perler")
	if err != nil {
		t.Fatalf("Colors: %v", err)
	}
	if len(colors) != 2 || colors[0].Name != "白色" || colors[0].R != 241 || colors[1].Code != "P02" {
		t.Fatalf("unexpected colors %+v", colors)
	}

	if _, err := store.GetRun(ctx, "missing"); !errors.Is(err, snapshot.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		saveRun(t, store, id, base.Add(time.Duration(i)*time.Hour), nil)
	}

	runs, err := store.ListRuns(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected runs %+v", runs)
	}

	prev, ok, err := store.PreviousRun(context.Background(), "c")
	if err != nil || !ok || prev.ID != "b" {
		t.Fatalf("unexpected previous run %+v ok=%v err=%v", prev, ok, err)
	}
	if _, ok, err := store.PreviousRun(context.Background(), "a"); err != nil || ok {
		t.Fatalf("first run should have no predecessor: ok=%v err=%v", ok, err)
	}
}

func TestDiffBetweenRuns(t *testing.T) {
	store := openStore(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	saveRun(t, store, "old", base, []catalog.Library{{Brand: "mard", Colors: []palette.Color{
		palette.NewColor("M001", "奶白", "M001", "FAF4C8"),
		palette.NewColor("M002", "Pink", "M002", "FFC0CB"),
		palette.NewColor("M003", "Gone", "M003", "123456"),
	}}})
	saveRun(t, store, "new", base.Add(time.Hour), []catalog.Library{{Brand: "mard", Colors: []palette.Color{
		palette.NewColor("M001", "奶白", "M001", "FAF4C8"),
		palette.NewColor("M002", "Pink", "M002", "FFB6C1"),
		palette.NewColor("M004", "New", "M004", "654321"),
	}}})

	diff, err := store.Diff(context.Background(), "old", "new")
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(diff.Added) != 1 || diff.Added[0].Code != "M004" || diff.Added[0].Before != nil {
		t.Fatalf("unexpected added %+v", diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0].Code != "M003" || diff.Removed[0].After != nil {
		t.Fatalf("unexpected removed %+v", diff.Removed)
	}
	if len(diff.Changed) != 1 || diff.Changed[0].Before.Hex != "FFC0CB" || diff.Changed[0].After.Hex != "FFB6C1" {
		t.Fatalf("unexpected changed %+v", diff.Changed)
	}

	same, err := store.Diff(context.Background(), "new", "new")
	if err != nil || !same.Empty() {
		t.Fatalf("expected empty self diff, got %+v err=%v", same, err)
	}
}

func TestSaveRunRejectsDuplicateID(t *testing.T) {
	store := openStore(t)
	saveRun(t, store, "dup", time.Now(), nil)
	err := store.SaveRun(context.Background(), snapshot.Run{ID: "dup", StartedAt: time.Now(), FinishedAt: time.Now()}, nil)
	if err == nil {
		t.Fatal("expected duplicate run id to fail")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")
	store, err := snapshot.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	if _, err := snapshot.Open(context.Background(), path); !errors.Is(err, snapshot.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
