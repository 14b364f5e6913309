package engine

import (
	"strings"

	"github.com/napolitain/colony-sim/internal/models"
)

// Default reputation bounds and thresholds
const (
	ReputationMin           = 0.0
	ReputationMax           = 100.0
	ReputationAllyThreshold = 75.0

	// BankPointsDivisor is the bank balance worth one empire point
	BankPointsDivisor = 100000.0
)

// Rules holds the tunable constants of the engine
type Rules struct {
	ReputationMin     float64
	ReputationMax     float64
	AllyThreshold     float64
	BankPointsDivisor float64
}

// DefaultRules returns the standard rules
func DefaultRules() Rules {
	return Rules{
		ReputationMin:     ReputationMin,
		ReputationMax:     ReputationMax,
		AllyThreshold:     ReputationAllyThreshold,
		BankPointsDivisor: BankPointsDivisor,
	}
}

// ClampReputation bounds a reputation value to [ReputationMin, ReputationMax]
func (r Rules) ClampReputation(v float64) float64 {
	if v < r.ReputationMin {
		return r.ReputationMin
	}
	if v > r.ReputationMax {
		return r.ReputationMax
	}
	return v
}

// IsAlly reports whether a reputation value counts as allied
func (r Rules) IsAlly(reputation float64) bool {
	return reputation >= r.AllyThreshold
}

// CountAllies counts bots at or above the ally threshold
func (r Rules) CountAllies(bots []models.Bot) int {
	n := 0
	for _, b := range bots {
		if r.IsAlly(b.Reputation) {
			n++
		}
	}
	return n
}

// ApplyReputationChanges returns a copy of bots with the clamped changes
// applied, and whether the number of allies grew. Unknown bot IDs are skipped.
func (r Rules) ApplyReputationChanges(bots []models.Bot, changes []ReputationChange) ([]models.Bot, bool) {
	updated := make([]models.Bot, len(bots))
	copy(updated, bots)

	before := r.CountAllies(updated)
	for _, ch := range changes {
		for i := range updated {
			if updated[i].ID == ch.BotID {
				updated[i].Reputation = r.ClampReputation(updated[i].Reputation + ch.Change)
			}
		}
	}
	return updated, r.CountAllies(updated) > before
}

// IsWinKey reports whether a mission log key denotes a victory.
// Matching is by key text: resolvers signal wins through their log key only.
func IsWinKey(key string) bool {
	return key == models.LogKeyBattleWin || strings.Contains(key, models.LogKeyPatrolBattleWin)
}
