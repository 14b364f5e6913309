package models

// BuildMode tells how a building's level is interpreted
type BuildMode string

const (
	// ModeQuantity buildings stack: level is the number owned
	ModeQuantity BuildMode = "QUANTITY"
	// ModeLevel buildings upgrade: level is the tier
	ModeLevel BuildMode = "LEVEL"
)

// BuildingDefinition contains static building data
type BuildingDefinition struct {
	Type             BuildingType
	Mode             BuildMode
	BaseCost         Resources
	CostMultiplier   float64
	BuildTimeSeconds int
	Production       Resources // per level, per second
	Storage          Resources // per level
	Score            float64
}

// CostAt returns the cost of building the next unit/tier on top of level
func (d *BuildingDefinition) CostAt(level int) Resources {
	mult := 1.0
	for i := 0; i < level; i++ {
		mult *= d.CostMultiplier
	}
	costs := make(Resources, len(d.BaseCost))
	for rt, base := range d.BaseCost {
		costs[rt] = base * mult
	}
	return costs
}

// UnitDefinition contains static unit data
type UnitDefinition struct {
	Type               UnitType
	Cost               Resources
	RecruitTimeSeconds int
	Attack             float64
	Defense            float64
	HP                 float64
	Score              float64
}

// TechDefinition contains static technology data
type TechDefinition struct {
	ID                  TechType
	TranslationKey      string
	Cost                Resources
	ResearchTimeSeconds int
	MaxLevel            int
	AttackBonus         float64 // per level, multiplicative on unit attack
	Score               float64
}

// Catalog is the read-only set of static definition tables
type Catalog struct {
	Buildings map[BuildingType]*BuildingDefinition
	Units     map[UnitType]*UnitDefinition
	Techs     map[TechType]*TechDefinition
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		Buildings: make(map[BuildingType]*BuildingDefinition),
		Units:     make(map[UnitType]*UnitDefinition),
		Techs:     make(map[TechType]*TechDefinition),
	}
}

// BuildingScore returns the score weight of a building, 0 if undefined
func (c *Catalog) BuildingScore(bt BuildingType) float64 {
	if c == nil {
		return 0
	}
	if def, ok := c.Buildings[bt]; ok && def != nil {
		return def.Score
	}
	return 0
}

// UnitScore returns the score weight of a unit, 0 if undefined
func (c *Catalog) UnitScore(ut UnitType) float64 {
	if c == nil {
		return 0
	}
	if def, ok := c.Units[ut]; ok && def != nil {
		return def.Score
	}
	return 0
}

// TechScore returns the score weight of a technology, 0 if undefined
func (c *Catalog) TechScore(tech TechType) float64 {
	if c == nil {
		return 0
	}
	if def, ok := c.Techs[tech]; ok && def != nil {
		return def.Score
	}
	return 0
}

// Unit returns a unit definition or nil
func (c *Catalog) Unit(ut UnitType) *UnitDefinition {
	if c == nil {
		return nil
	}
	return c.Units[ut]
}
