package engine

import "github.com/napolitain/colony-sim/internal/models"

// ResolveRequest is everything a resolver may look at for one mission
type ResolveRequest struct {
	Mission          models.Mission
	Resources        models.Resources // accumulating working copy, not the tick's input snapshot
	MaxResources     models.Resources
	CampaignProgress int
	TechLevels       map[models.TechType]int
	ActiveWar        *models.War
	Now              int64
	Bots             []models.Bot
	EmpirePoints     float64
}

// CombatResult summarises casualties of a mission's fight
type CombatResult struct {
	PlayerCasualties models.Units `json:"totalPlayerCasualties"`
	EnemyCasualties  models.Units `json:"totalEnemyCasualties"`
}

// ReputationChange is an additive reputation delta for one bot
type ReputationChange struct {
	BotID  string
	Change float64
}

// Outcome is the result of resolving one mission.
// Resources is a full replacement map; unit and building maps are additive.
type Outcome struct {
	Resources           models.Resources
	UnitsToAdd          models.Units
	BuildingsToAdd      map[models.BuildingType]int
	LogKey              string
	LogType             models.LogType
	LogParams           map[string]any
	Combat              *CombatResult
	NewCampaignProgress *int
	NewGrudge           *models.Grudge
	ReputationChanges   []ReputationChange
}

// IsWin classifies an outcome by its log key
func (o *Outcome) IsWin() bool {
	return IsWinKey(o.LogKey)
}

// MissionResolver settles a due mission. Implementations must be
// deterministic for identical requests.
type MissionResolver interface {
	Resolve(req ResolveRequest) (*Outcome, error)
}

// ResolverFunc adapts a function to MissionResolver
type ResolverFunc func(req ResolveRequest) (*Outcome, error)

// Resolve calls f(req)
func (f ResolverFunc) Resolve(req ResolveRequest) (*Outcome, error) {
	return f(req)
}
