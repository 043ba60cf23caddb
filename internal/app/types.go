package app

import (
	"context"
)

// Stage represents a single stage of the settings workflow.
// Each stage implements this interface to provide a name and execution logic.
type Stage interface {
	Name() ExecutionStage
	Execute(ctx context.Context, state *ExecutionState) error
}
