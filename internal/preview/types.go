package preview

import (
	"context"

	"settingskit/pkg/blueprint"
)

// Previewer loads a rendered settings tree into a throwaway CI server.
type Previewer interface {
	// Preview starts the server on dir and waits until it reports that the
	// settings were loaded. With hold set, the server keeps running until ctx
	// is cancelled.
	Preview(ctx context.Context, cfg *blueprint.Preview, dir string, hold bool) (*Result, error)
}

// Result describes a successful preview.
type Result struct {
	URL string
	// Lines holds the cleaned server output seen until the server was ready.
	Lines int
}
