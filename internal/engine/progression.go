package engine

import (
	"maps"
	"math"
	"slices"

	"github.com/napolitain/colony-sim/internal/models"
)

// Progression is the derived score and tutorial state of a snapshot
type Progression struct {
	EmpirePoints      float64 `json:"empirePoints"`
	TutorialClaimable bool    `json:"tutorialClaimable"`
}

// Recalculate derives empire points and tutorial readiness. It is pure:
// state is only read, and repeated calls give the same result.
func Recalculate(state *models.GameState, catalog *models.Catalog, steps []models.TutorialStep, rules Rules) Progression {
	return Progression{
		EmpirePoints:      EmpirePoints(state, catalog, rules),
		TutorialClaimable: tutorialClaimable(state, steps),
	}
}

// ScoreBreakdown is empire points split by source
type ScoreBreakdown struct {
	Buildings float64 `json:"buildings"`
	Garrison  float64 `json:"garrison"`
	Deployed  float64 `json:"deployed"`
	Research  float64 `json:"research"`
	Bank      float64 `json:"bank"`
}

// Total is the empire point total
func (b ScoreBreakdown) Total() float64 {
	return b.Buildings + b.Garrison + b.Deployed + b.Research + b.Bank
}

// EmpirePoints sums building, unit (garrisoned and deployed) and research
// scores plus one point per full BankPointsDivisor of bank balance.
// Undefined entries score zero.
func EmpirePoints(state *models.GameState, catalog *models.Catalog, rules Rules) float64 {
	return Score(state, catalog, rules).Total()
}

// Score computes the per-source empire points of state
func Score(state *models.GameState, catalog *models.Catalog, rules Rules) ScoreBreakdown {
	var b ScoreBreakdown

	for _, bt := range slices.Sorted(maps.Keys(state.Buildings)) {
		b.Buildings += float64(state.Buildings[bt].Level) * catalog.BuildingScore(bt)
	}

	for _, ut := range slices.Sorted(maps.Keys(state.Units)) {
		b.Garrison += float64(state.Units[ut]) * catalog.UnitScore(ut)
	}

	for _, m := range state.ActiveMissions {
		for _, ut := range slices.Sorted(maps.Keys(m.Units)) {
			b.Deployed += float64(m.Units[ut]) * catalog.UnitScore(ut)
		}
	}

	seen := make(map[models.TechType]bool, len(state.ResearchedTechs))
	for _, tech := range state.ResearchedTechs {
		if seen[tech] {
			continue
		}
		seen[tech] = true
		b.Research += catalog.TechScore(tech)
	}

	if rules.BankPointsDivisor > 0 {
		b.Bank = math.Floor(state.BankBalance / rules.BankPointsDivisor)
	}

	return b
}

// tutorialClaimable is sticky: once true it stays true
func tutorialClaimable(state *models.GameState, steps []models.TutorialStep) bool {
	if state.TutorialClaimable {
		return true
	}
	if state.CurrentTutorialID == "" {
		return false
	}
	step, ok := models.FindTutorialStep(steps, state.CurrentTutorialID)
	if !ok || step.Condition == nil {
		return false
	}
	return step.Condition(state)
}
