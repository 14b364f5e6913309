// Package engine advances a colony's game state through time.
//
// Processor.Process evaluates every time-gated queue against a single
// timestamp and returns a full patch of the tick-affected fields; Recalculate
// derives empire points and tutorial readiness from a merged state.
package engine

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/napolitain/colony-sim/internal/models"
)

// TickResult is the output of one tick
type TickResult struct {
	Updates models.StateUpdates `json:"updates"`
	Logs    []models.LogEntry   `json:"logs"`
}

// Option customises a Processor
type Option func(*Processor)

// WithRules overrides the reputation and scoring rules
func WithRules(rules Rules) Option {
	return func(p *Processor) {
		p.rules = rules
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Processor runs ticks against a mission resolver
type Processor struct {
	resolver MissionResolver
	rules    Rules
	logger   *slog.Logger
}

// NewProcessor creates a processor backed by resolver
func NewProcessor(resolver MissionResolver, opts ...Option) *Processor {
	p := &Processor{
		resolver: resolver,
		rules:    DefaultRules(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Rules returns the rules the processor applies
func (p *Processor) Rules() Rules {
	return p.rules
}

// Process advances state to now. The input state is never modified.
// On a resolver error no result is returned and the caller must not merge anything.
func (p *Processor) Process(state *models.GameState, now int64, war *models.War) (*TickResult, error) {
	work := state.Clone()
	if work.Resources == nil {
		work.Resources = make(models.Resources)
	}
	if work.Buildings == nil {
		work.Buildings = make(models.Buildings)
	}
	if work.Units == nil {
		work.Units = make(models.Units)
	}
	if work.TechLevels == nil {
		work.TechLevels = make(map[models.TechType]int)
	}

	constructions := p.completeConstructions(work, now)
	recruitments := p.completeRecruitments(work, now)
	p.completeResearch(work, now)

	missions, logs, err := p.resolveMissions(work, now, war)
	if err != nil {
		return nil, err
	}

	return &TickResult{
		Updates: models.StateUpdates{
			Resources:                       work.Resources,
			Buildings:                       work.Buildings,
			Units:                           work.Units,
			ActiveConstructions:             constructions,
			ActiveRecruitments:              recruitments,
			ResearchedTechs:                 work.ResearchedTechs,
			TechLevels:                      work.TechLevels,
			ActiveResearch:                  work.ActiveResearch,
			ActiveMissions:                  missions,
			CampaignProgress:                work.CampaignProgress,
			LastCampaignMissionFinishedTime: work.LastCampaignMissionFinishedTime,
			LifetimeStats:                   work.LifetimeStats,
			Grudges:                         work.Grudges,
			RankingData:                     work.RankingData,
		},
		Logs: logs,
	}, nil
}

// completeConstructions applies due construction jobs and returns the pending ones
func (p *Processor) completeConstructions(work *models.GameState, now int64) []models.ConstructionJob {
	pending := make([]models.ConstructionJob, 0, len(work.ActiveConstructions))
	for _, job := range work.ActiveConstructions {
		if !job.Due(now) {
			pending = append(pending, job)
			continue
		}
		work.Buildings.Add(job.BuildingType, job.Count)
		p.logger.Debug("construction complete",
			"job", job.ID, "building", job.BuildingType, "count", job.Count,
			"level", work.Buildings[job.BuildingType].Level)
	}
	return pending
}

// completeRecruitments applies due recruitment jobs and returns the pending ones
func (p *Processor) completeRecruitments(work *models.GameState, now int64) []models.RecruitmentJob {
	pending := make([]models.RecruitmentJob, 0, len(work.ActiveRecruitments))
	for _, job := range work.ActiveRecruitments {
		if !job.Due(now) {
			pending = append(pending, job)
			continue
		}
		work.Units[job.UnitType] += job.Count
		p.logger.Debug("recruitment complete",
			"job", job.ID, "unit", job.UnitType, "count", job.Count)
	}
	return pending
}

// completeResearch finishes the single research slot if it is due.
// At most one level is gained per call.
func (p *Processor) completeResearch(work *models.GameState, now int64) {
	research := work.ActiveResearch
	if research == nil || !research.Due(now) {
		return
	}
	work.TechLevels[research.TechID]++
	if !work.HasResearched(research.TechID) {
		work.ResearchedTechs = append(work.ResearchedTechs, research.TechID)
	}
	work.ActiveResearch = nil
	p.logger.Debug("research complete",
		"tech", research.TechID, "level", work.TechLevels[research.TechID])
}

// resolveMissions settles due missions in stored order. Each resolver call
// sees the resources and bots as left by the previous one.
func (p *Processor) resolveMissions(work *models.GameState, now int64, war *models.War) ([]models.Mission, []models.LogEntry, error) {
	pending := make([]models.Mission, 0, len(work.ActiveMissions))
	logs := make([]models.LogEntry, 0)

	for i, mission := range work.ActiveMissions {
		if !mission.Due(now) {
			pending = append(pending, mission)
			continue
		}

		outcome, err := p.resolver.Resolve(ResolveRequest{
			Mission:          mission.Clone(),
			Resources:        work.Resources.Clone(),
			MaxResources:     work.MaxResources.Clone(),
			CampaignProgress: work.CampaignProgress,
			TechLevels:       maps.Clone(work.TechLevels),
			ActiveWar:        war,
			Now:              now,
			Bots:             slices.Clone(work.RankingData.Bots),
			EmpirePoints:     work.EmpirePoints,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("resolve mission %s: %w", mission.ID, err)
		}
		if outcome == nil {
			return nil, nil, fmt.Errorf("resolve mission %s: %w", mission.ID, ErrNoOutcome)
		}

		p.applyOutcome(work, mission, outcome, now)

		if len(outcome.ReputationChanges) > 0 {
			bots, newAlly := p.rules.ApplyReputationChanges(work.RankingData.Bots, outcome.ReputationChanges)
			work.RankingData.Bots = bots
			if newAlly {
				logs = append(logs, models.LogEntry{
					ID:        fmt.Sprintf("%d-%d-ally", now, i),
					Key:       models.LogKeyNewAlly,
					Timestamp: now,
					Type:      models.LogInfo,
				})
			}
		}

		logs = append(logs, models.LogEntry{
			ID:        fmt.Sprintf("%d-%d", now, i),
			Key:       outcome.LogKey,
			Params:    logParams(outcome),
			Timestamp: now,
			Type:      outcome.LogType,
		})

		p.logger.Info("mission resolved",
			"mission", mission.ID, "type", mission.Type, "key", outcome.LogKey, "win", outcome.IsWin())
	}

	return pending, logs, nil
}

// applyOutcome folds a resolver outcome into the working state
func (p *Processor) applyOutcome(work *models.GameState, mission models.Mission, outcome *Outcome, now int64) {
	if outcome.Resources != nil {
		work.Resources = outcome.Resources.Clone()
	}
	for ut, count := range outcome.UnitsToAdd {
		work.Units[ut] += count
	}
	for bt, count := range outcome.BuildingsToAdd {
		work.Buildings.Add(bt, count)
	}

	if outcome.Combat != nil {
		work.LifetimeStats.UnitsLost += outcome.Combat.PlayerCasualties.Total()
		work.LifetimeStats.EnemiesKilled += outcome.Combat.EnemyCasualties.Total()
	}
	if outcome.IsWin() {
		work.LifetimeStats.MissionsCompleted++
	}

	if mission.Type == models.MissionCampaignAttack {
		work.LastCampaignMissionFinishedTime = now
		if outcome.NewCampaignProgress != nil && *outcome.NewCampaignProgress > work.CampaignProgress {
			work.CampaignProgress = *outcome.NewCampaignProgress
		}
	}

	if outcome.NewGrudge != nil {
		work.Grudges = append(work.Grudges, *outcome.NewGrudge)
	}
}

// logParams returns the outcome's log params with the combat summary attached
func logParams(outcome *Outcome) map[string]any {
	if outcome.Combat == nil {
		return outcome.LogParams
	}
	params := make(map[string]any, len(outcome.LogParams)+1)
	maps.Copy(params, outcome.LogParams)
	if _, ok := params["combatResult"]; !ok {
		params["combatResult"] = *outcome.Combat
	}
	return params
}
