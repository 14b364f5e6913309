package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/colony-sim/internal/models"
)

// CatalogFile is the default catalog file name inside a data directory
const CatalogFile = "catalog.yaml"

// catalogYAML represents the YAML structure of the catalog file
type catalogYAML struct {
	Buildings map[string]buildingYAML `yaml:"buildings"`
	Units     map[string]unitYAML     `yaml:"units"`
	Techs     map[string]techYAML     `yaml:"techs"`
	Tutorial  []tutorialYAML          `yaml:"tutorial"`
}

type buildingYAML struct {
	Mode             string           `yaml:"mode"`
	BaseCost         models.Resources `yaml:"base_cost"`
	CostMultiplier   float64          `yaml:"cost_multiplier"`
	BuildTimeSeconds int              `yaml:"build_time_seconds"`
	Production       models.Resources `yaml:"production"`
	Storage          models.Resources `yaml:"storage"`
	Score            float64          `yaml:"score"`
}

type unitYAML struct {
	Cost               models.Resources `yaml:"cost"`
	RecruitTimeSeconds int              `yaml:"recruit_time_seconds"`
	Attack             float64          `yaml:"attack"`
	Defense            float64          `yaml:"defense"`
	HP                 float64          `yaml:"hp"`
	Score              float64          `yaml:"score"`
}

type techYAML struct {
	TranslationKey      string           `yaml:"translation_key"`
	Cost                models.Resources `yaml:"cost"`
	ResearchTimeSeconds int              `yaml:"research_time_seconds"`
	MaxLevel            int              `yaml:"max_level"`
	AttackBonus         float64          `yaml:"attack_bonus"`
	Score               float64          `yaml:"score"`
}

type tutorialYAML struct {
	ID          string           `yaml:"id"`
	TitleKey    string           `yaml:"title_key"`
	Reward      models.Resources `yaml:"reward"`
	Requirement struct {
		Kind   string  `yaml:"kind"`
		Target string  `yaml:"target"`
		Value  float64 `yaml:"value"`
	} `yaml:"requirement"`
}

// LoadCatalog loads the definition tables and tutorial steps from dataDir
func LoadCatalog(dataDir string) (*models.Catalog, []models.TutorialStep, error) {
	filePath := filepath.Join(dataDir, CatalogFile)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", CatalogFile, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes catalog YAML
func ParseCatalog(data []byte) (*models.Catalog, []models.TutorialStep, error) {
	var raw catalogYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	catalog := models.NewCatalog()

	for name, b := range raw.Buildings {
		mode := models.BuildMode(b.Mode)
		if mode == "" {
			mode = models.ModeQuantity
		}
		if mode != models.ModeQuantity && mode != models.ModeLevel {
			return nil, nil, fmt.Errorf("building %s: unknown mode %q", name, b.Mode)
		}
		for _, res := range []models.Resources{b.BaseCost, b.Production, b.Storage} {
			if err := checkResources(res); err != nil {
				return nil, nil, fmt.Errorf("building %s: %w", name, err)
			}
		}
		multiplier := b.CostMultiplier
		if multiplier == 0 {
			multiplier = 1
		}
		bt := models.BuildingType(name)
		catalog.Buildings[bt] = &models.BuildingDefinition{
			Type:             bt,
			Mode:             mode,
			BaseCost:         b.BaseCost,
			CostMultiplier:   multiplier,
			BuildTimeSeconds: b.BuildTimeSeconds,
			Production:       b.Production,
			Storage:          b.Storage,
			Score:            b.Score,
		}
	}

	for name, u := range raw.Units {
		if err := checkResources(u.Cost); err != nil {
			return nil, nil, fmt.Errorf("unit %s: %w", name, err)
		}
		ut := models.UnitType(name)
		catalog.Units[ut] = &models.UnitDefinition{
			Type:               ut,
			Cost:               u.Cost,
			RecruitTimeSeconds: u.RecruitTimeSeconds,
			Attack:             u.Attack,
			Defense:            u.Defense,
			HP:                 u.HP,
			Score:              u.Score,
		}
	}

	for name, t := range raw.Techs {
		if err := checkResources(t.Cost); err != nil {
			return nil, nil, fmt.Errorf("tech %s: %w", name, err)
		}
		id := models.TechType(name)
		catalog.Techs[id] = &models.TechDefinition{
			ID:                  id,
			TranslationKey:      t.TranslationKey,
			Cost:                t.Cost,
			ResearchTimeSeconds: t.ResearchTimeSeconds,
			MaxLevel:            t.MaxLevel,
			AttackBonus:         t.AttackBonus,
			Score:               t.Score,
		}
	}

	steps := make([]models.TutorialStep, 0, len(raw.Tutorial))
	seen := make(map[string]bool, len(raw.Tutorial))
	for i, s := range raw.Tutorial {
		if s.ID == "" {
			return nil, nil, fmt.Errorf("tutorial step %d has no id", i)
		}
		if seen[s.ID] {
			return nil, nil, fmt.Errorf("duplicate tutorial step %q", s.ID)
		}
		seen[s.ID] = true

		req := models.Requirement{
			Kind:   models.RequirementKind(s.Requirement.Kind),
			Target: s.Requirement.Target,
			Value:  s.Requirement.Value,
		}
		cond, err := req.Condition()
		if err != nil {
			return nil, nil, fmt.Errorf("tutorial step %s: %w", s.ID, err)
		}
		steps = append(steps, models.TutorialStep{
			ID:        s.ID,
			TitleKey:  s.TitleKey,
			Reward:    s.Reward,
			Condition: cond,
		})
	}

	return catalog, steps, nil
}

func checkResources(res models.Resources) error {
	known := models.AllResourceTypes()
	for rt := range res {
		if !slices.Contains(known, rt) {
			return fmt.Errorf("unknown resource %q", rt)
		}
	}
	return nil
}
