package models

import "fmt"

// TutorialStep is one step of the onboarding tutorial
type TutorialStep struct {
	ID        string
	TitleKey  string
	Reward    Resources
	Condition func(*GameState) bool
}

// RequirementKind names a declarative tutorial condition
type RequirementKind string

const (
	RequireBuildingLevel     RequirementKind = "building_level"
	RequireUnitCount         RequirementKind = "unit_count"
	RequireTechResearched    RequirementKind = "tech_researched"
	RequireResourceAmount    RequirementKind = "resource_amount"
	RequireMissionsCompleted RequirementKind = "missions_completed"
	RequireCampaignProgress  RequirementKind = "campaign_progress"
)

// Requirement is the data form of a tutorial condition
type Requirement struct {
	Kind   RequirementKind
	Target string
	Value  float64
}

// Condition compiles the requirement into a predicate over the state
func (r Requirement) Condition() (func(*GameState) bool, error) {
	switch r.Kind {
	case RequireBuildingLevel:
		bt := BuildingType(r.Target)
		return func(s *GameState) bool {
			return float64(s.BuildingLevel(bt)) >= r.Value
		}, nil
	case RequireUnitCount:
		ut := UnitType(r.Target)
		return func(s *GameState) bool {
			return float64(s.Units[ut]) >= r.Value
		}, nil
	case RequireTechResearched:
		tech := TechType(r.Target)
		return func(s *GameState) bool {
			return s.HasResearched(tech)
		}, nil
	case RequireResourceAmount:
		rt := ResourceType(r.Target)
		return func(s *GameState) bool {
			return s.Resources[rt] >= r.Value
		}, nil
	case RequireMissionsCompleted:
		return func(s *GameState) bool {
			return float64(s.LifetimeStats.MissionsCompleted) >= r.Value
		}, nil
	case RequireCampaignProgress:
		return func(s *GameState) bool {
			return float64(s.CampaignProgress) >= r.Value
		}, nil
	}
	return nil, fmt.Errorf("unknown requirement kind %q", r.Kind)
}

// FindTutorialStep returns the step with the given id
func FindTutorialStep(steps []TutorialStep, id string) (TutorialStep, bool) {
	for _, step := range steps {
		if step.ID == id {
			return step, true
		}
	}
	return TutorialStep{}, false
}
