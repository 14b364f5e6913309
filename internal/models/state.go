package models

import "slices"

// GameState is the complete snapshot of one player's colony
type GameState struct {
	Resources    Resources `json:"resources"`
	MaxResources Resources `json:"maxResources"`
	Buildings    Buildings `json:"buildings"`
	Units        Units     `json:"units"`

	// Queues
	ActiveConstructions []ConstructionJob `json:"activeConstructions"`
	ActiveRecruitments  []RecruitmentJob  `json:"activeRecruitments"`
	ActiveResearch      *ResearchJob      `json:"activeResearch"`
	ActiveMissions      []Mission         `json:"activeMissions"`

	// Research
	ResearchedTechs []TechType       `json:"researchedTechs"`
	TechLevels      map[TechType]int `json:"techLevels"`

	// Diplomacy
	Grudges     []Grudge    `json:"grudges"`
	RankingData RankingData `json:"rankingData"`

	// Bookkeeping
	LifetimeStats                   LifetimeStats `json:"lifetimeStats"`
	CampaignProgress                int           `json:"campaignProgress"`
	LastCampaignMissionFinishedTime int64         `json:"lastCampaignMissionFinishedTime"`
	EmpirePoints                    float64       `json:"empirePoints"`
	TutorialClaimable               bool          `json:"tutorialClaimable"`
	CurrentTutorialID               string        `json:"currentTutorialId,omitempty"`
	BankBalance                     float64       `json:"bankBalance"`
}

// NewGameState creates an empty game state with initialized collections
func NewGameState() *GameState {
	return &GameState{
		Resources:           make(Resources),
		MaxResources:        make(Resources),
		Buildings:           make(Buildings),
		Units:               make(Units),
		ActiveConstructions: make([]ConstructionJob, 0),
		ActiveRecruitments:  make([]RecruitmentJob, 0),
		ActiveMissions:      make([]Mission, 0),
		ResearchedTechs:     make([]TechType, 0),
		TechLevels:          make(map[TechType]int),
		Grudges:             make([]Grudge, 0),
		RankingData:         RankingData{Bots: make([]Bot, 0)},
	}
}

// HasResearched reports whether a tech has been completed at least once
func (s *GameState) HasResearched(tech TechType) bool {
	return slices.Contains(s.ResearchedTechs, tech)
}

// BuildingLevel returns the level of a building, 0 when absent
func (s *GameState) BuildingLevel(bt BuildingType) int {
	return s.Buildings[bt].Level
}

// UnitsOnMissions returns the units currently deployed on active missions
func (s *GameState) UnitsOnMissions() Units {
	deployed := make(Units)
	for _, m := range s.ActiveMissions {
		for ut, count := range m.Units {
			deployed[ut] += count
		}
	}
	return deployed
}

// Clone creates a deep copy of the state
func (s *GameState) Clone() *GameState {
	clone := *s
	clone.Resources = s.Resources.Clone()
	clone.MaxResources = s.MaxResources.Clone()
	clone.Buildings = s.Buildings.Clone()
	clone.Units = s.Units.Clone()
	clone.ActiveConstructions = slices.Clone(s.ActiveConstructions)
	clone.ActiveRecruitments = slices.Clone(s.ActiveRecruitments)
	if s.ActiveResearch != nil {
		research := *s.ActiveResearch
		clone.ActiveResearch = &research
	}
	clone.ActiveMissions = make([]Mission, len(s.ActiveMissions))
	for i, m := range s.ActiveMissions {
		clone.ActiveMissions[i] = m.Clone()
	}
	clone.ResearchedTechs = slices.Clone(s.ResearchedTechs)
	clone.TechLevels = make(map[TechType]int, len(s.TechLevels))
	for tech, level := range s.TechLevels {
		clone.TechLevels[tech] = level
	}
	clone.Grudges = slices.Clone(s.Grudges)
	clone.RankingData = s.RankingData.Clone()
	return &clone
}

// StateUpdates is the patch produced by one tick. Every field is a full
// replacement; fields a tick never writes (bank balance, empire points,
// tutorial fields) are not part of it.
type StateUpdates struct {
	Resources                       Resources         `json:"resources"`
	Buildings                       Buildings         `json:"buildings"`
	Units                           Units             `json:"units"`
	ActiveConstructions             []ConstructionJob `json:"activeConstructions"`
	ActiveRecruitments              []RecruitmentJob  `json:"activeRecruitments"`
	ResearchedTechs                 []TechType        `json:"researchedTechs"`
	TechLevels                      map[TechType]int  `json:"techLevels"`
	ActiveResearch                  *ResearchJob      `json:"activeResearch"`
	ActiveMissions                  []Mission         `json:"activeMissions"`
	CampaignProgress                int               `json:"campaignProgress"`
	LastCampaignMissionFinishedTime int64             `json:"lastCampaignMissionFinishedTime"`
	LifetimeStats                   LifetimeStats     `json:"lifetimeStats"`
	Grudges                         []Grudge          `json:"grudges"`
	RankingData                     RankingData       `json:"rankingData"`
}

// Apply merges a tick patch into the state
func (s *GameState) Apply(u StateUpdates) {
	s.Resources = u.Resources
	s.Buildings = u.Buildings
	s.Units = u.Units
	s.ActiveConstructions = u.ActiveConstructions
	s.ActiveRecruitments = u.ActiveRecruitments
	s.ResearchedTechs = u.ResearchedTechs
	s.TechLevels = u.TechLevels
	s.ActiveResearch = u.ActiveResearch
	s.ActiveMissions = u.ActiveMissions
	s.CampaignProgress = u.CampaignProgress
	s.LastCampaignMissionFinishedTime = u.LastCampaignMissionFinishedTime
	s.LifetimeStats = u.LifetimeStats
	s.Grudges = u.Grudges
	s.RankingData = u.RankingData
}
