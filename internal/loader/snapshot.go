package loader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/napolitain/colony-sim/internal/models"
)

// ErrInvalidSnapshot is returned when a snapshot does not match the schema
var ErrInvalidSnapshot = errors.New("invalid snapshot")

const schemaURL = "https://colony-sim.local/schemas/snapshot.schema.json"

//go:embed schemas/snapshot.schema.json
var snapshotSchema []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// Snapshot is a stored game state with the tick context around it
type Snapshot struct {
	Now       int64             `json:"now,omitempty"`
	ActiveWar *models.War       `json:"activeWar"`
	State     *models.GameState `json:"state"`
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(snapshotSchema)); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// ParseSnapshot validates data against the snapshot schema and decodes it
func ParseSnapshot(data []byte) (*Snapshot, error) {
	s, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	normalize(snap.State)
	return &snap, nil
}

// LoadSnapshot reads and validates a snapshot file
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// SaveSnapshot writes a snapshot as indented JSON
func SaveSnapshot(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// normalize replaces null collections with empty ones
func normalize(s *models.GameState) {
	empty := models.NewGameState()
	if s.Resources == nil {
		s.Resources = empty.Resources
	}
	if s.MaxResources == nil {
		s.MaxResources = empty.MaxResources
	}
	if s.Buildings == nil {
		s.Buildings = empty.Buildings
	}
	if s.Units == nil {
		s.Units = empty.Units
	}
	if s.ActiveConstructions == nil {
		s.ActiveConstructions = empty.ActiveConstructions
	}
	if s.ActiveRecruitments == nil {
		s.ActiveRecruitments = empty.ActiveRecruitments
	}
	if s.ActiveMissions == nil {
		s.ActiveMissions = empty.ActiveMissions
	}
	if s.ResearchedTechs == nil {
		s.ResearchedTechs = empty.ResearchedTechs
	}
	if s.TechLevels == nil {
		s.TechLevels = empty.TechLevels
	}
	if s.Grudges == nil {
		s.Grudges = empty.Grudges
	}
	if s.RankingData.Bots == nil {
		s.RankingData.Bots = empty.RankingData.Bots
	}
}
