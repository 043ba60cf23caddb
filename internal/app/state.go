package app

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"
)

// ExecutionStage represents the stages of the apply workflow
type ExecutionStage string

const (
	StageValidate  ExecutionStage = "validate"
	StageRender    ExecutionStage = "render"
	StagePublish   ExecutionStage = "publish"
	StagePreview   ExecutionStage = "preview"
	StageCompleted ExecutionStage = "completed"
)

// stageOrder is the order stages run in. Resuming skips every stage up to and
// including the last successful one.
var stageOrder = []ExecutionStage{StageValidate, StageRender, StagePublish, StagePreview}

// ExecutionState represents the state of an apply run
type ExecutionState struct {
	SchemaVersion       string         `json:"schema_version"`
	RunID               string         `json:"run_id"`
	LastSuccessfulStage ExecutionStage `json:"last_successful_stage"`
	BlueprintPath       string         `json:"blueprint_path"`
	// RenderedFiles lists the files written by the render stage.
	RenderedFiles []string  `json:"rendered_files,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

const (
	DefaultStateFile   = ".settingskit.state.json"
	StateSchemaVersion = "1.0"
)

// loadState attempts to load the execution state from path.
// Returns nil if the file doesn't exist (fresh start).
func loadState(path string) (*ExecutionState, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state ExecutionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	if state.SchemaVersion != StateSchemaVersion {
		return nil, fmt.Errorf("unsupported state file schema version %q, expected %q", state.SchemaVersion, StateSchemaVersion)
	}

	return &state, nil
}

// saveState persists the execution state to path.
func saveState(path string, state *ExecutionState) error {
	state.LastUpdatedAt = time.Now()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// newState creates a new execution state for a fresh run
func newState(blueprintPath, runID string) *ExecutionState {
	now := time.Now()
	return &ExecutionState{
		SchemaVersion: StateSchemaVersion,
		RunID:         runID,
		BlueprintPath: blueprintPath,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}

// shouldSkipStage determines if a stage should be skipped based on the current state
func (s *ExecutionState) shouldSkipStage(stage ExecutionStage) bool {
	if s == nil || s.LastSuccessfulStage == "" {
		return false
	}
	if s.LastSuccessfulStage == StageCompleted {
		return true
	}

	last := slices.Index(stageOrder, s.LastSuccessfulStage)
	current := slices.Index(stageOrder, stage)
	if last < 0 || current < 0 {
		return false
	}
	return current <= last
}

// getNextStage returns the next stage to execute based on the current state
func (s *ExecutionState) getNextStage() ExecutionStage {
	if s == nil || s.LastSuccessfulStage == "" {
		return stageOrder[0]
	}
	if s.LastSuccessfulStage == StageCompleted {
		return StageCompleted
	}

	last := slices.Index(stageOrder, s.LastSuccessfulStage)
	switch {
	case last < 0:
		return stageOrder[0]
	case last == len(stageOrder)-1:
		return StageCompleted
	default:
		return stageOrder[last+1]
	}
}

// removeStateFile removes the state file after successful completion
func removeStateFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
