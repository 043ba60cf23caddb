// Package runtime defines the container operations the preview server needs.
package runtime

import (
	"context"
	"io"
)

// RunOptions defines the parameters for running a container.
type RunOptions struct {
	Image            string
	Command          []string
	VolumeMounts     map[string]string
	EnvVars          map[string]string
	WorkingDirectory string
	// Ports publishes container ports (keys) on host ports (values).
	Ports map[int]int
}

// ContainerRuntime defines the contract for container operations.
type ContainerRuntime interface {
	PullImage(ctx context.Context, image string) error
	// RunContainer starts a container and streams its combined output.
	// Closing the stream stops and removes the container.
	RunContainer(ctx context.Context, opts RunOptions) (io.ReadCloser, error)
}
