package models

// ResourceType represents the different resource types in the game
type ResourceType string

const (
	Money   ResourceType = "MONEY"
	Oil     ResourceType = "OIL"
	Ammo    ResourceType = "AMMO"
	Gold    ResourceType = "GOLD"
	Diamond ResourceType = "DIAMOND"
)

// AllResourceTypes returns all resource types in deterministic order
func AllResourceTypes() []ResourceType {
	return []ResourceType{Money, Oil, Ammo, Gold, Diamond}
}

// BuildingType represents the different building types
type BuildingType string

const (
	House          BuildingType = "HOUSE"
	Factory        BuildingType = "FACTORY"
	OilRig         BuildingType = "OIL_RIG"
	MunitionsPlant BuildingType = "MUNITIONS_PLANT"
	GoldMine       BuildingType = "GOLD_MINE"
	Bank           BuildingType = "BANK"
	Barracks       BuildingType = "BARRACKS"
	University     BuildingType = "UNIVERSITY"
	Warehouse      BuildingType = "WAREHOUSE"
)

// UnitType represents the different unit types
type UnitType string

const (
	CyberMarine UnitType = "CYBER_MARINE"
	Sniper      UnitType = "SNIPER"
	Tank        UnitType = "TANK"
	Drone       UnitType = "DRONE"
	Bomber      UnitType = "BOMBER"
)

// TechType identifies a researchable technology
type TechType string

const (
	TechBallistics   TechType = "BALLISTICS"
	TechLogistics    TechType = "LOGISTICS"
	TechRobotics     TechType = "ROBOTICS"
	TechDeepDrilling TechType = "DEEP_DRILLING"
	TechBanking      TechType = "BANKING"
)

// MissionType is the kind of a deployed mission
type MissionType string

const (
	MissionPatrol         MissionType = "PATROL"
	MissionCampaignAttack MissionType = "CAMPAIGN_ATTACK"
	MissionAttack         MissionType = "ATTACK"
)

// LogType classifies a log entry for presentation
type LogType string

const (
	LogInfo    LogType = "info"
	LogCombat  LogType = "combat"
	LogMission LogType = "mission"
	LogDanger  LogType = "danger"
	LogSuccess LogType = "success"
)

// Log keys with engine-level meaning
const (
	LogKeyBattleWin       = "log_battle_win"
	LogKeyPatrolBattleWin = "patrol_battle_win"
	LogKeyNewAlly         = "log_new_ally"
)

// Resources maps a resource type to a quantity
type Resources map[ResourceType]float64

// Clone returns a copy of the resource map
func (r Resources) Clone() Resources {
	out := make(Resources, len(r))
	for rt, amount := range r {
		out[rt] = amount
	}
	return out
}

// BuildingState is the stored state of one building type.
// Level is a cumulative count for quantity-mode buildings and a tier for level-mode ones.
type BuildingState struct {
	Level     int  `json:"level"`
	IsDamaged bool `json:"isDamaged,omitempty"`
}

// Buildings maps building type to its state
type Buildings map[BuildingType]BuildingState

// Clone returns a copy of the building map
func (b Buildings) Clone() Buildings {
	out := make(Buildings, len(b))
	for bt, st := range b {
		out[bt] = st
	}
	return out
}

// Add increases the level of a building, creating the entry if absent
func (b Buildings) Add(bt BuildingType, count int) {
	st := b[bt]
	st.Level += count
	b[bt] = st
}

// Units maps unit type to a count
type Units map[UnitType]int

// Clone returns a copy of the unit map
func (u Units) Clone() Units {
	out := make(Units, len(u))
	for ut, count := range u {
		out[ut] = count
	}
	return out
}

// Total returns the sum of all unit counts
func (u Units) Total() int {
	total := 0
	for _, count := range u {
		total += count
	}
	return total
}

// ConstructionJob is a queued building order
type ConstructionJob struct {
	ID           string       `json:"id"`
	BuildingType BuildingType `json:"buildingType"`
	Count        int          `json:"count"`
	StartTime    int64        `json:"startTime"`
	EndTime      int64        `json:"endTime"`
}

// Due reports whether the job has finished at now
func (j ConstructionJob) Due(now int64) bool {
	return now >= j.EndTime
}

// RecruitmentJob is a queued unit order
type RecruitmentJob struct {
	ID        string   `json:"id"`
	UnitType  UnitType `json:"unitType"`
	Count     int      `json:"count"`
	StartTime int64    `json:"startTime"`
	EndTime   int64    `json:"endTime"`
}

// Due reports whether the job has finished at now
func (j RecruitmentJob) Due(now int64) bool {
	return now >= j.EndTime
}

// ResearchJob occupies the single research slot
type ResearchJob struct {
	TechID    TechType `json:"techId"`
	StartTime int64    `json:"startTime"`
	EndTime   int64    `json:"endTime"`
}

// Due reports whether the research has finished at now
func (j ResearchJob) Due(now int64) bool {
	return now >= j.EndTime
}

// Mission is a deployment of units. Its units are not part of the garrison
// until the mission is resolved.
type Mission struct {
	ID         string      `json:"id"`
	Type       MissionType `json:"type"`
	Units      Units       `json:"units"`
	StartTime  int64       `json:"startTime"`
	EndTime    int64       `json:"endTime"`
	TargetName string      `json:"targetName,omitempty"`
	TargetID   string      `json:"targetId,omitempty"`
	Difficulty int         `json:"difficulty,omitempty"`
}

// Due reports whether the mission has returned at now
func (m Mission) Due(now int64) bool {
	return now >= m.EndTime
}

// Clone returns a deep copy of the mission
func (m Mission) Clone() Mission {
	m.Units = m.Units.Clone()
	return m
}

// Grudge is a pending hostile-intent record against the player
type Grudge struct {
	ID              string `json:"id"`
	BotID           string `json:"botId"`
	BotName         string `json:"botName"`
	Reason          string `json:"reason"`
	CreatedAt       int64  `json:"createdAt"`
	RetaliationTime int64  `json:"retaliationTime"`
	Notified        bool   `json:"notified,omitempty"`
}

// Bot is an NPC competitor in the rankings
type Bot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Reputation  float64 `json:"reputation"`
	Personality string  `json:"personality,omitempty"`
}

// RankingData holds the NPC leaderboard
type RankingData struct {
	Bots           []Bot `json:"bots"`
	LastUpdateTime int64 `json:"lastUpdateTime"`
}

// Clone returns a deep copy of the ranking data
func (r RankingData) Clone() RankingData {
	bots := make([]Bot, len(r.Bots))
	copy(bots, r.Bots)
	return RankingData{Bots: bots, LastUpdateTime: r.LastUpdateTime}
}

// LifetimeStats are cumulative counters kept for the whole game
type LifetimeStats struct {
	EnemiesKilled       int     `json:"enemiesKilled"`
	UnitsLost           int     `json:"unitsLost"`
	ResourcesMined      float64 `json:"resourcesMined"`
	MissionsCompleted   int     `json:"missionsCompleted"`
	HighestRankAchieved int     `json:"highestRankAchieved"`
}

// War is the context of an ongoing war with one bot
type War struct {
	ID          string  `json:"id"`
	EnemyBotID  string  `json:"enemyBotId"`
	EnemyName   string  `json:"enemyName"`
	StartTime   int64   `json:"startTime"`
	EndTime     int64   `json:"endTime"`
	PlayerScore float64 `json:"playerScore"`
	EnemyScore  float64 `json:"enemyScore"`
}

// LogEntry is one line of the player's event log
type LogEntry struct {
	ID        string         `json:"id"`
	Key       string         `json:"messageKey"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp int64          `json:"timestamp"`
	Type      LogType        `json:"type"`
}
