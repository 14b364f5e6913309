// Package resolver provides the standard deterministic mission resolver.
package resolver

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/models"
)

// ErrUnknownMissionType is returned for mission types the resolver cannot settle
var ErrUnknownMissionType = errors.New("unknown mission type")

// Log keys produced by the standard resolver
const (
	KeyPatrolWin  = "log_patrol_battle_win"
	KeyPatrolLoss = "log_patrol_battle_loss"
	KeyBattleWin  = models.LogKeyBattleWin
	KeyBattleLoss = "log_battle_loss"
	KeyTargetGone = "log_attack_target_gone"
)

// Standard resolves missions from unit and tech definitions without randomness
type Standard struct {
	catalog *models.Catalog
}

// New creates a standard resolver over catalog
func New(catalog *models.Catalog) *Standard {
	return &Standard{catalog: catalog}
}

var _ engine.MissionResolver = (*Standard)(nil)

// Resolve settles one mission
func (s *Standard) Resolve(req engine.ResolveRequest) (*engine.Outcome, error) {
	switch req.Mission.Type {
	case models.MissionPatrol:
		return s.resolvePatrol(req), nil
	case models.MissionCampaignAttack:
		return s.resolveCampaign(req), nil
	case models.MissionAttack:
		return s.resolveAttack(req)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMissionType, req.Mission.Type)
}

func (s *Standard) resolvePatrol(req engine.ResolveRequest) *engine.Outcome {
	minutes := missionMinutes(req.Mission)
	enemy := PatrolBasePower + PatrolPowerPerMinute*minutes
	result := s.fight(req.Mission.Units, req.TechLevels, enemy)

	resources := req.Resources.Clone()
	out := &engine.Outcome{
		UnitsToAdd: result.survivors,
		Combat:     result.combat(),
		LogParams:  map[string]any{"minutes": minutes},
	}

	if result.won {
		loot := models.Resources{
			models.Money: math.Floor(PatrolMoneyPerMinute * minutes),
			models.Ammo:  math.Floor(PatrolAmmoPerMinute * minutes),
		}
		addResources(resources, loot)
		out.LogKey, out.LogType = KeyPatrolWin, models.LogCombat
		out.LogParams["loot"] = loot
	} else {
		out.LogKey, out.LogType = KeyPatrolLoss, models.LogDanger
	}

	out.Resources = capResources(resources, req.MaxResources)
	return out
}

func (s *Standard) resolveCampaign(req engine.ResolveRequest) *engine.Outcome {
	level := req.CampaignProgress + 1
	enemy := CampaignBasePower * math.Pow(CampaignPowerGrowth, float64(level-1))
	result := s.fight(req.Mission.Units, req.TechLevels, enemy)

	resources := req.Resources.Clone()
	out := &engine.Outcome{
		UnitsToAdd: result.survivors,
		Combat:     result.combat(),
		LogParams:  map[string]any{"level": level},
	}

	if result.won {
		addResources(resources, models.Resources{models.Gold: CampaignGoldPerLevel * float64(level)})
		out.NewCampaignProgress = &level
		out.LogKey, out.LogType = KeyBattleWin, models.LogCombat
		for _, bot := range req.Bots {
			out.ReputationChanges = append(out.ReputationChanges, engine.ReputationChange{
				BotID:  bot.ID,
				Change: CampaignReputationBonus,
			})
		}
	} else {
		out.LogKey, out.LogType = KeyBattleLoss, models.LogDanger
	}

	out.Resources = capResources(resources, req.MaxResources)
	return out
}

func (s *Standard) resolveAttack(req engine.ResolveRequest) (*engine.Outcome, error) {
	idx := slices.IndexFunc(req.Bots, func(b models.Bot) bool { return b.ID == req.Mission.TargetID })
	if idx < 0 {
		// The target left the rankings while the army was away: it returns whole.
		return &engine.Outcome{
			Resources:  req.Resources.Clone(),
			UnitsToAdd: req.Mission.Units.Clone(),
			LogKey:     KeyTargetGone,
			LogType:    models.LogMission,
			LogParams:  map[string]any{"targetId": req.Mission.TargetID},
		}, nil
	}
	target := req.Bots[idx]

	enemy := target.Score * AttackPowerPerScore
	result := s.fight(req.Mission.Units, req.TechLevels, enemy)

	resources := req.Resources.Clone()
	out := &engine.Outcome{
		UnitsToAdd: result.survivors,
		Combat:     result.combat(),
		LogParams:  map[string]any{"targetName": target.Name},
	}

	if !result.won {
		out.LogKey, out.LogType = KeyBattleLoss, models.LogDanger
		out.ReputationChanges = []engine.ReputationChange{{BotID: target.ID, Change: AttackLossReputation}}
		out.Resources = capResources(resources, req.MaxResources)
		return out, nil
	}

	lootMoney := target.Score * AttackLootPerScore
	if req.ActiveWar != nil && req.ActiveWar.EnemyBotID == target.ID {
		lootMoney *= WarLootMultiplier
		out.LogParams["war"] = req.ActiveWar.ID
	}
	loot := models.Resources{
		models.Money: math.Floor(lootMoney),
		models.Oil:   math.Floor(lootMoney / 4),
	}
	addResources(resources, loot)

	plunder := models.House
	if target.Score >= PlunderFactoryScore {
		plunder = models.Factory
	}

	out.LogKey, out.LogType = KeyBattleWin, models.LogCombat
	out.LogParams["loot"] = loot
	out.BuildingsToAdd = map[models.BuildingType]int{plunder: 1}
	out.ReputationChanges = []engine.ReputationChange{{BotID: target.ID, Change: AttackWinReputation}}
	out.NewGrudge = &models.Grudge{
		ID:              "grudge-" + req.Mission.ID,
		BotID:           target.ID,
		BotName:         target.Name,
		Reason:          "attacked",
		CreatedAt:       req.Now,
		RetaliationTime: req.Now + GrudgeDelayMillis,
	}
	out.Resources = capResources(resources, req.MaxResources)
	return out, nil
}

// missionMinutes is the planned length of a mission in minutes
func missionMinutes(m models.Mission) float64 {
	if m.EndTime <= m.StartTime {
		return 0
	}
	return float64(m.EndTime-m.StartTime) / 60000
}

// addResources adds delta into res
func addResources(res, delta models.Resources) {
	for rt, amount := range delta {
		res[rt] += amount
	}
}

// capResources bounds every resource with a positive cap
func capResources(res, limits models.Resources) models.Resources {
	for _, rt := range slices.Sorted(maps.Keys(res)) {
		if limit, ok := limits[rt]; ok && limit > 0 && res[rt] > limit {
			res[rt] = limit
		}
	}
	return res
}
