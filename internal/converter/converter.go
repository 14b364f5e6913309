// Package converter maps engine types to and from protobuf Struct payloads.
package converter

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/models"
)

// ToStruct converts any JSON-tagged value to a Struct
func ToStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("to struct: %w", err)
	}
	return out, nil
}

// FromStruct decodes a Struct into v
func FromStruct(s *structpb.Struct, v any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// StructToSnapshot validates a Struct against the snapshot schema and decodes it
func StructToSnapshot(s *structpb.Struct) (*loader.Snapshot, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: empty request", loader.ErrInvalidSnapshot)
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return nil, err
	}
	return loader.ParseSnapshot(data)
}

// SnapshotToStruct builds the request payload for a state at now
func SnapshotToStruct(state *models.GameState, now int64, war *models.War) (*structpb.Struct, error) {
	return ToStruct(loader.Snapshot{Now: now, ActiveWar: war, State: state})
}

// TickResultToStruct converts a tick result to a Struct with "updates" and "logs"
func TickResultToStruct(result *engine.TickResult) (*structpb.Struct, error) {
	return ToStruct(result)
}

// StructToTickResult decodes a Struct produced by TickResultToStruct
func StructToTickResult(s *structpb.Struct) (*engine.TickResult, error) {
	var result engine.TickResult
	if err := FromStruct(s, &result); err != nil {
		return nil, fmt.Errorf("decode tick result: %w", err)
	}
	return &result, nil
}

// ProgressionToStruct converts a recalculation result
func ProgressionToStruct(p engine.Progression) (*structpb.Struct, error) {
	return ToStruct(p)
}

// StructToProgression decodes a Struct produced by ProgressionToStruct
func StructToProgression(s *structpb.Struct) (engine.Progression, error) {
	var p engine.Progression
	if err := FromStruct(s, &p); err != nil {
		return p, fmt.Errorf("decode progression: %w", err)
	}
	return p, nil
}
