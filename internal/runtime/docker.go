package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"

	"settingskit/pkg/runtime"
)

// stopTimeout is how long a container gets to shut down before it is killed.
const stopTimeout = 30 * time.Second

// DockerRuntime implements the ContainerRuntime interface using Docker client.
type DockerRuntime struct {
	client *client.Client
}

// NewDockerRuntime creates a new DockerRuntime instance using client.FromEnv.
func NewDockerRuntime() (*DockerRuntime, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	// Check if Docker daemon is accessible
	if _, err := dockerClient.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	return &DockerRuntime{
		client: dockerClient,
	}, nil
}

// PullImage pulls a Docker image.
func (d *DockerRuntime) PullImage(ctx context.Context, imageName string) error {
	slog.Info("Pulling Docker image", "image", imageName)

	reader, err := d.client.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageName, err)
	}
	defer reader.Close()

	// Drain the progress stream; the pull finishes when it ends.
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to stream image pull output: %w", err)
	}

	slog.Info("Successfully pulled Docker image", "image", imageName)
	return nil
}

// RunContainer starts a container and returns its demultiplexed output.
func (d *DockerRuntime) RunContainer(ctx context.Context, opts runtime.RunOptions) (io.ReadCloser, error) {
	slog.Info("Running container", "image", opts.Image, "command", opts.Command, "ports", opts.Ports)

	containerConfig, hostConfig, err := containerConfigs(opts)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}
	containerID := resp.ID

	if err := d.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		if removeErr := d.client.ContainerRemove(context.Background(), containerID, container.RemoveOptions{Force: true}); removeErr != nil {
			slog.Error("Failed to remove container after start failure", "containerID", containerID, "error", removeErr)
		}
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	return newContainerReader(ctx, d.client, containerID), nil
}

// containerConfigs translates RunOptions into the Docker API shapes.
func containerConfigs(opts runtime.RunOptions) (*container.Config, *container.HostConfig, error) {
	var mounts []mount.Mount
	for _, hostPath := range sortedKeys(opts.VolumeMounts) {
		mounts = append(mounts, mount.Mount{
			Type:   mount.TypeBind,
			Source: hostPath,
			Target: opts.VolumeMounts[hostPath],
		})
	}

	var envVars []string
	for _, key := range sortedKeys(opts.EnvVars) {
		envVars = append(envVars, fmt.Sprintf("%s=%s", key, opts.EnvVars[key]))
	}

	exposed := nat.PortSet{}
	bindings := nat.PortMap{}
	for containerPort, hostPort := range opts.Ports {
		port, err := nat.NewPort("tcp", strconv.Itoa(containerPort))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid container port %d: %w", containerPort, err)
		}
		exposed[port] = struct{}{}
		bindings[port] = []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: strconv.Itoa(hostPort)}}
	}

	containerConfig := &container.Config{
		Image:        opts.Image,
		Cmd:          opts.Command,
		Env:          envVars,
		WorkingDir:   opts.WorkingDirectory,
		ExposedPorts: exposed,
	}
	hostConfig := &container.HostConfig{
		Mounts:       mounts,
		PortBindings: bindings,
	}
	return containerConfig, hostConfig, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// containerAPI is the part of the Docker client a containerReader uses.
type containerAPI interface {
	ContainerLogs(ctx context.Context, containerID string, options container.LogsOptions) (io.ReadCloser, error)
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
}

// containerReader wraps container output and handles cleanup. Read and Close
// may be called from different goroutines.
type containerReader struct {
	api         containerAPI
	containerID string
	ctx         context.Context
	cancel      context.CancelFunc

	once   sync.Once
	mu     sync.Mutex
	logs   io.ReadCloser
	reader *io.PipeReader
	err    error
	closed bool
}

func newContainerReader(ctx context.Context, api containerAPI, containerID string) *containerReader {
	ctx, cancel := context.WithCancel(ctx)
	return &containerReader{api: api, containerID: containerID, ctx: ctx, cancel: cancel}
}

// Read reads from the container output, attaching to the logs on first use.
func (cr *containerReader) Read(p []byte) (int, error) {
	cr.once.Do(cr.attach)

	cr.mu.Lock()
	reader, err := cr.reader, cr.err
	cr.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return reader.Read(p)
}

func (cr *containerReader) attach() {
	logs, err := cr.api.ContainerLogs(cr.ctx, cr.containerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
	})

	cr.mu.Lock()
	defer cr.mu.Unlock()
	switch {
	case cr.closed:
		if logs != nil {
			logs.Close()
		}
		cr.err = io.ErrClosedPipe
		return
	case err != nil:
		cr.err = fmt.Errorf("failed to get container logs: %w", err)
		return
	}
	cr.logs = logs

	pr, pw := io.Pipe()
	cr.reader = pr
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, logs)
		pw.CloseWithError(err)
	}()
}

// Close stops and removes the container.
func (cr *containerReader) Close() error {
	cr.mu.Lock()
	if cr.closed {
		cr.mu.Unlock()
		return nil
	}
	cr.closed = true
	logs, reader := cr.logs, cr.reader
	cr.mu.Unlock()

	// Unblocks an attach still waiting for the log stream.
	cr.cancel()
	if logs != nil {
		logs.Close()
		reader.Close()
	}

	// The caller's context may already be cancelled; cleanup must still run.
	ctx := context.Background()
	timeout := int(stopTimeout.Seconds())
	if err := cr.api.ContainerStop(ctx, cr.containerID, container.StopOptions{Timeout: &timeout}); err != nil {
		slog.Error("Failed to stop container", "containerID", cr.containerID, "error", err)
	}

	if err := cr.api.ContainerRemove(ctx, cr.containerID, container.RemoveOptions{Force: true}); err != nil {
		slog.Error("Failed to remove container", "containerID", cr.containerID, "error", err)
		return err
	}

	slog.Info("Container removed", "containerID", cr.containerID)
	return nil
}
