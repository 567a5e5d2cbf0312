package main

import (
	"testing"

	"beadcolors/internal/testsupport"
)

func TestRunsHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "No runs recorded")

	if _, _, err := runCLI(t, []string{"convert"}, env.configPath); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, _, err := runCLI(t, []string{"runs", "diff"}, env.configPath); err == nil {
		t.Fatalf("expected diff to need two runs")
	}

	testsupport.WriteDump(t, env.cfg.Paths.SourceDir, "ikea", testsupport.Dump(
		testsupport.Swatch("Ikea", "01", "#EEEE00", "Yellow"),
	))
	if _, _, err := runCLI(t, []string{"convert"}, env.configPath); err != nil {
		t.Fatalf("second convert: %v", err)
	}

	out, _, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "typescript")

	out, _, err = runCLI(t, []string{"runs", "diff"}, env.configPath)
	if err != nil {
		t.Fatalf("runs diff: %v", err)
	}
	requireContains(t, out, "#FFFF00")
	requireContains(t, out, "#EEEE00")
}

func TestRunsShowAcceptsPrefix(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"convert"}, env.configPath); err != nil {
		t.Fatalf("convert: %v", err)
	}
	store := openTestStore(t, env)
	runs, err := store.ListRuns(t.Context(), 1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("list runs: %v (%d)", err, len(runs))
	}
	store.Close()

	out, _, err := runCLI(t, []string{"runs", "show", runs[0].ID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("runs show: %v", err)
	}
	requireContains(t, out, runs[0].ID)
	requireContains(t, out, "not_found")

	if _, _, err := runCLI(t, []string{"runs", "show", "does-not-exist"}, env.configPath); err == nil {
		t.Fatalf("expected unknown run error")
	}
}

func TestRunsDisabledHistory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutSnapshots())

	if _, _, err := runCLI(t, []string{"runs"}, env.configPath); err == nil {
		t.Fatalf("expected disabled history error")
	}
}
