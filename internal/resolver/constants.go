package resolver

// Battle and reward constants
const (
	// PatrolBasePower is the enemy strength met on a patrol, before duration scaling
	PatrolBasePower = 40.0

	// PatrolPowerPerMinute adds enemy strength for every minute a patrol is out
	PatrolPowerPerMinute = 2.0

	// PatrolMoneyPerMinute and PatrolAmmoPerMinute are the patrol rewards
	PatrolMoneyPerMinute = 25.0
	PatrolAmmoPerMinute  = 4.0

	// CampaignBasePower is the enemy strength of campaign level 1
	CampaignBasePower = 120.0

	// CampaignPowerGrowth multiplies enemy strength per campaign level
	CampaignPowerGrowth = 1.35

	// CampaignGoldPerLevel is the gold reward per campaign level
	CampaignGoldPerLevel = 50.0

	// CampaignReputationBonus is granted to every bot after a campaign victory
	CampaignReputationBonus = 5.0

	// AttackPowerPerScore converts a bot's ranking score to defending strength
	AttackPowerPerScore = 0.5

	// AttackLootPerScore converts a bot's ranking score to plundered money
	AttackLootPerScore = 2.0

	// WarLootMultiplier applies when the target is the active war enemy
	WarLootMultiplier = 1.5

	// AttackWinReputation and AttackLossReputation are the target's reputation deltas
	AttackWinReputation  = -15.0
	AttackLossReputation = -5.0

	// PlunderFactoryScore is the bot score from which a factory is plundered instead of a house
	PlunderFactoryScore = 5000.0

	// GrudgeDelayMillis is how long a bot waits before retaliating
	GrudgeDelayMillis = int64(6 * 60 * 60 * 1000)

	// DefaultAttack is used for units missing from the catalog
	DefaultAttack = 10.0
)
