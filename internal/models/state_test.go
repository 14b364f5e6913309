package models

import (
	"math"
	"testing"
)

func populatedState() *GameState {
	s := NewGameState()
	s.Resources[Money] = 100
	s.Buildings[House] = BuildingState{Level: 2}
	s.Units[Tank] = 3
	s.ActiveResearch = &ResearchJob{TechID: TechBallistics, EndTime: 50}
	s.ActiveMissions = []Mission{{ID: "m", Type: MissionPatrol, Units: Units{Tank: 1}}}
	s.TechLevels[TechBallistics] = 1
	s.ResearchedTechs = []TechType{TechBallistics}
	s.RankingData.Bots = []Bot{{ID: "b1", Reputation: 10}}
	return s
}

func TestCloneIsDeep(t *testing.T) {
	orig := populatedState()
	c := orig.Clone()

	c.Resources[Money] = 1
	c.Buildings[House] = BuildingState{Level: 9}
	c.Units[Tank] = 0
	c.ActiveResearch.EndTime = 999
	c.ActiveMissions[0].Units[Tank] = 7
	c.TechLevels[TechBallistics] = 4
	c.ResearchedTechs[0] = TechBanking
	c.RankingData.Bots[0].Reputation = 90

	if orig.Resources[Money] != 100 || orig.Buildings[House].Level != 2 || orig.Units[Tank] != 3 {
		t.Errorf("Maps shared with clone: %+v", orig)
	}
	if orig.ActiveResearch.EndTime != 50 {
		t.Errorf("Research job shared with clone")
	}
	if orig.ActiveMissions[0].Units[Tank] != 1 {
		t.Errorf("Mission units shared with clone")
	}
	if orig.TechLevels[TechBallistics] != 1 || orig.ResearchedTechs[0] != TechBallistics {
		t.Errorf("Tech data shared with clone")
	}
	if orig.RankingData.Bots[0].Reputation != 10 {
		t.Errorf("Bots shared with clone")
	}
}

func TestApplyKeepsUntouchedFields(t *testing.T) {
	s := populatedState()
	s.BankBalance = 5000
	s.EmpirePoints = 42
	s.CurrentTutorialID = "t1"
	s.MaxResources[Money] = 1000

	s.Apply(StateUpdates{
		Resources:        Resources{Money: 7},
		Buildings:        Buildings{Factory: {Level: 1}},
		Units:            Units{},
		CampaignProgress: 3,
	})

	if s.Resources[Money] != 7 || s.Buildings[Factory].Level != 1 || s.CampaignProgress != 3 {
		t.Errorf("Patch not applied: %+v", s)
	}
	if _, ok := s.Buildings[House]; ok {
		t.Errorf("Expected full replacement of buildings")
	}
	if s.BankBalance != 5000 || s.EmpirePoints != 42 || s.CurrentTutorialID != "t1" || s.MaxResources[Money] != 1000 {
		t.Errorf("Untouched fields changed: %+v", s)
	}
}

func TestBuildingsAdd(t *testing.T) {
	b := Buildings{House: {Level: 2, IsDamaged: true}}
	b.Add(House, 3)
	b.Add(Bank, 1)

	if got := b[House]; got.Level != 5 || !got.IsDamaged {
		t.Errorf("Expected level 5 damaged house, got %+v", got)
	}
	if got := b[Bank].Level; got != 1 {
		t.Errorf("Expected new bank entry at level 1, got %d", got)
	}
}

func TestStateHelpers(t *testing.T) {
	s := populatedState()
	s.ActiveMissions = append(s.ActiveMissions, Mission{ID: "m2", Units: Units{Tank: 2, Drone: 1}})

	if !s.HasResearched(TechBallistics) || s.HasResearched(TechRobotics) {
		t.Errorf("HasResearched mismatch")
	}
	if got := s.BuildingLevel(Bank); got != 0 {
		t.Errorf("Expected 0 for absent building, got %d", got)
	}
	deployed := s.UnitsOnMissions()
	if deployed[Tank] != 3 || deployed[Drone] != 1 || deployed.Total() != 4 {
		t.Errorf("Unexpected deployed units: %v", deployed)
	}
}

func TestJobsDue(t *testing.T) {
	tests := []struct {
		name string
		now  int64
		want bool
	}{
		{"before end", 99, false},
		{"at end", 100, true},
		{"after end", 1000, true},
	}
	for _, tc := range tests {
		if got := (ConstructionJob{EndTime: 100}).Due(tc.now); got != tc.want {
			t.Errorf("construction %s: expected %v, got %v", tc.name, tc.want, got)
		}
		if got := (Mission{EndTime: 100}).Due(tc.now); got != tc.want {
			t.Errorf("mission %s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCostAt(t *testing.T) {
	def := &BuildingDefinition{BaseCost: Resources{Money: 100}, CostMultiplier: 1.5}
	if got := def.CostAt(0)[Money]; got != 100 {
		t.Errorf("Expected base cost at level 0, got %v", got)
	}
	if got := def.CostAt(2)[Money]; math.Abs(got-225) > 1e-9 {
		t.Errorf("Expected 225 at level 2, got %v", got)
	}
}

func TestCatalogScoresNilSafe(t *testing.T) {
	var c *Catalog
	if c.BuildingScore(House) != 0 || c.UnitScore(Tank) != 0 || c.TechScore(TechBanking) != 0 || c.Unit(Tank) != nil {
		t.Errorf("Expected zero values from a nil catalog")
	}
}

func TestRequirementConditions(t *testing.T) {
	s := NewGameState()
	s.Buildings[Barracks] = BuildingState{Level: 2}
	s.Units[Sniper] = 4
	s.Resources[Gold] = 50
	s.LifetimeStats.MissionsCompleted = 3
	s.CampaignProgress = 1
	s.ResearchedTechs = []TechType{TechLogistics}

	tests := []struct {
		req  Requirement
		want bool
	}{
		{Requirement{Kind: RequireBuildingLevel, Target: "BARRACKS", Value: 2}, true},
		{Requirement{Kind: RequireBuildingLevel, Target: "BARRACKS", Value: 3}, false},
		{Requirement{Kind: RequireUnitCount, Target: "SNIPER", Value: 5}, false},
		{Requirement{Kind: RequireResourceAmount, Target: "GOLD", Value: 50}, true},
		{Requirement{Kind: RequireMissionsCompleted, Value: 3}, true},
		{Requirement{Kind: RequireCampaignProgress, Value: 2}, false},
		{Requirement{Kind: RequireTechResearched, Target: "LOGISTICS"}, true},
		{Requirement{Kind: RequireTechResearched, Target: "BANKING"}, false},
	}

	for _, tc := range tests {
		cond, err := tc.req.Condition()
		if err != nil {
			t.Fatalf("%+v: %v", tc.req, err)
		}
		if got := cond(s); got != tc.want {
			t.Errorf("%+v: expected %v, got %v", tc.req, tc.want, got)
		}
	}

	if _, err := (Requirement{Kind: "unknown"}).Condition(); err == nil {
		t.Error("Expected error for unknown kind")
	}
}
