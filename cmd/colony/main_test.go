package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/models"
)

// copySample copies the sample snapshot so tests can write to it
func copySample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../data/sample_state.json")
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	dataDir, configFile, quiet = "", "", false

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data", "../../data"}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v\n%s", args, err, errOut.String())
	}
	return out.String()
}

func TestTickWritesMergedState(t *testing.T) {
	path := copySample(t)

	out := execute(t, "tick", path, "--write")
	if !strings.Contains(out, "empire points") {
		t.Errorf("Expected a summary line, got:\n%s", out)
	}
	if strings.Contains(out, "Nothing happened") {
		t.Errorf("Expected log entries, got:\n%s", out)
	}

	snap, err := loader.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	s := snap.State
	if len(s.ActiveMissions) != 0 {
		t.Errorf("Expected the patrol to be resolved, got %d missions", len(s.ActiveMissions))
	}
	if !s.HasResearched(models.TechBallistics) {
		t.Errorf("Expected ballistics researched")
	}
	if s.LifetimeStats.MissionsCompleted != 1 {
		t.Errorf("Expected 1 completed mission, got %d", s.LifetimeStats.MissionsCompleted)
	}
	if !s.TutorialClaimable {
		t.Errorf("Expected first_patrol to be claimable")
	}
	if s.EmpirePoints <= 0 {
		t.Errorf("Expected empire points to be recalculated")
	}
}

func TestTickWithoutWriteLeavesFile(t *testing.T) {
	path := copySample(t)
	before, _ := os.ReadFile(path)

	execute(t, "--quiet", "tick", path)

	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Errorf("Expected snapshot untouched without --write")
	}
}

func TestPoints(t *testing.T) {
	out := execute(t, "points", "../../data/sample_state.json")
	// 3 houses, 1 factory, 12 marines home, 20 deployed, 250000 banked
	if !strings.Contains(out, "✓ 73 empire points") {
		t.Errorf("Expected 73 empire points, got:\n%s", out)
	}
	if !strings.Contains(out, "not yet complete") {
		t.Errorf("Expected tutorial status, got:\n%s", out)
	}
}

func TestFormatName(t *testing.T) {
	tests := map[string]string{
		"OIL_RIG":      "Oil Rig",
		"CYBER_MARINE": "Cyber Marine",
		"HOUSE":        "House",
	}
	for in, want := range tests {
		if got := formatName(in); got != want {
			t.Errorf("formatName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestForecast(t *testing.T) {
	out := execute(t, "forecast", "../../data/sample_state.json")
	for _, want := range []string{"due now", "Research", "Mission"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in forecast, got:\n%s", want, out)
		}
	}
}

func TestForecastWithoutSnapshotTime(t *testing.T) {
	path := copySample(t)
	snap, err := loader.LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	snap.Now = 0
	if err := loader.SaveSnapshot(path, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := execute(t, "forecast", path)
	if got := strings.Count(out, "due now"); got != 4 {
		t.Errorf("Expected every event due against the wall clock, got %d:\n%s", got, out)
	}
}

func TestForecastNowFlag(t *testing.T) {
	out := execute(t, "forecast", "../../data/sample_state.json", "--now", "0")
	if got := strings.Count(out, "due now"); got != 4 {
		t.Errorf("Expected --now 0 to fall back to the wall clock, got %d due:\n%s", got, out)
	}
}
