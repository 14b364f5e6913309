package loader

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/napolitain/colony-sim/internal/models"
)

func TestLoadSnapshot(t *testing.T) {
	snap, err := LoadSnapshot("../../data/sample_state.json")
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}

	if snap.Now != 1800000 {
		t.Errorf("Expected now 1800000, got %d", snap.Now)
	}
	if snap.ActiveWar != nil {
		t.Errorf("Expected no war, got %+v", snap.ActiveWar)
	}
	s := snap.State
	if s.Units[models.CyberMarine] != 12 {
		t.Errorf("Expected 12 marines, got %d", s.Units[models.CyberMarine])
	}
	if s.ActiveResearch == nil || s.ActiveResearch.TechID != models.TechBallistics {
		t.Errorf("Expected ballistics research, got %+v", s.ActiveResearch)
	}
	if len(s.RankingData.Bots) != 2 {
		t.Errorf("Expected 2 bots, got %d", len(s.RankingData.Bots))
	}
	if s.BankBalance != 250000 {
		t.Errorf("Expected bank balance 250000, got %v", s.BankBalance)
	}
}

func TestParseSnapshotRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{"state":`},
		{"missing state", `{"now": 5}`},
		{"missing units", `{"state": {"resources": {}, "buildings": {}}}`},
		{"negative unit count", `{"state": {"resources": {}, "buildings": {}, "units": {"TANK": -1}}}`},
		{"fractional level", `{"state": {"resources": {}, "buildings": {"HOUSE": {"level": 1.5}}, "units": {}}}`},
		{"mission without id", `{"state": {"resources": {}, "buildings": {}, "units": {}, "activeMissions": [{"type": "PATROL", "units": {}, "endTime": 1}]}}`},
		{"research without tech", `{"state": {"resources": {}, "buildings": {}, "units": {}, "activeResearch": {"endTime": 1}}}`},
		{"war without enemy", `{"activeWar": {"id": "w"}, "state": {"resources": {}, "buildings": {}, "units": {}}}`},
	}

	for _, tc := range tests {
		if _, err := ParseSnapshot([]byte(tc.json)); !errors.Is(err, ErrInvalidSnapshot) {
			t.Errorf("%s: expected ErrInvalidSnapshot, got %v", tc.name, err)
		}
	}
}

func TestParseSnapshotFillsNullCollections(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"state": {"resources": null, "buildings": {}, "units": {}, "activeMissions": null}}`))
	if err != nil {
		t.Fatalf("ParseSnapshot failed: %v", err)
	}
	s := snap.State
	if s.Resources == nil || s.ActiveMissions == nil || s.TechLevels == nil || s.RankingData.Bots == nil {
		t.Errorf("Expected empty collections, got %+v", s)
	}
}

func TestSaveSnapshotRoundTrip(t *testing.T) {
	state := models.NewGameState()
	state.Resources[models.Money] = 42
	state.Buildings[models.Factory] = models.BuildingState{Level: 2}
	state.ActiveMissions = append(state.ActiveMissions, models.Mission{
		ID: "m", Type: models.MissionPatrol, Units: models.Units{models.Drone: 3}, EndTime: 10,
	})
	war := &models.War{ID: "w1", EnemyBotID: "b1"}

	path := filepath.Join(t.TempDir(), "state.json")
	if err := SaveSnapshot(path, &Snapshot{Now: 7, ActiveWar: war, State: state}); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.State, state) {
		t.Errorf("State changed across save/load:\n%+v\n%+v", state, loaded.State)
	}
	if loaded.Now != 7 || loaded.ActiveWar.EnemyBotID != "b1" {
		t.Errorf("Unexpected context: now=%d war=%+v", loaded.Now, loaded.ActiveWar)
	}
}
