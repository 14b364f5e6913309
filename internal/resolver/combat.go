package resolver

import (
	"maps"
	"math"
	"slices"

	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/models"
)

// battle is the settled fight of one mission
type battle struct {
	won              bool
	playerPower      float64
	enemyPower       float64
	survivors        models.Units
	playerCasualties models.Units
	enemyCasualties  models.Units
}

func (b battle) combat() *engine.CombatResult {
	return &engine.CombatResult{
		PlayerCasualties: b.playerCasualties,
		EnemyCasualties:  b.enemyCasualties,
	}
}

// Power returns the attack strength of a force with tech bonuses applied
func (s *Standard) Power(units models.Units, techLevels map[models.TechType]int) float64 {
	bonus := 1.0
	if s.catalog != nil {
		for _, tech := range slices.Sorted(maps.Keys(techLevels)) {
			if def, ok := s.catalog.Techs[tech]; ok && def != nil {
				bonus += def.AttackBonus * float64(techLevels[tech])
			}
		}
	}

	power := 0.0
	for _, ut := range slices.Sorted(maps.Keys(units)) {
		power += float64(units[ut]) * s.attackOf(ut)
	}
	return power * bonus
}

func (s *Standard) attackOf(ut models.UnitType) float64 {
	if def := s.catalog.Unit(ut); def != nil && def.Attack > 0 {
		return def.Attack
	}
	return DefaultAttack
}

// fight settles a force against an enemy strength. The winner is the
// stronger side; losses scale with the strength ratio.
func (s *Standard) fight(units models.Units, techLevels map[models.TechType]int, enemyPower float64) battle {
	player := s.Power(units, techLevels)
	b := battle{
		won:         player > enemyPower,
		playerPower: player,
		enemyPower:  enemyPower,
	}

	var playerLoss, enemyLoss float64
	switch {
	case player <= 0:
		playerLoss, enemyLoss = 1, 0
	case b.won:
		playerLoss = 0.5 * enemyPower / player
		enemyLoss = 1
	default:
		ratio := enemyPower / player
		playerLoss = math.Min(1, 0.5+0.25*ratio)
		enemyLoss = 0.5 / ratio
	}

	b.survivors = make(models.Units, len(units))
	b.playerCasualties = make(models.Units)
	for _, ut := range slices.Sorted(maps.Keys(units)) {
		lost := int(math.Floor(float64(units[ut]) * playerLoss))
		if lost > 0 {
			b.playerCasualties[ut] = lost
		}
		if left := units[ut] - lost; left > 0 {
			b.survivors[ut] = left
		}
	}

	b.enemyCasualties = make(models.Units)
	enemyCount := int(math.Ceil(enemyPower / s.attackOf(models.CyberMarine)))
	if killed := int(math.Floor(float64(enemyCount) * enemyLoss)); killed > 0 {
		b.enemyCasualties[models.CyberMarine] = killed
	}
	return b
}
