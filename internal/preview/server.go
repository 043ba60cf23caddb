// Package preview runs the CI server in a container against a rendered
// settings tree.
package preview

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"settingskit/pkg/blueprint"
	"settingskit/pkg/runtime"
)

// Defaults for the fields of blueprint.Preview left empty.
const (
	DefaultImage         = "jetbrains/teamcity-server:latest"
	DefaultPort          = 8111
	DefaultReadyMarker   = "TeamCity initialized"
	DefaultFailureMarker = "Failed to load"
	DefaultTimeout       = 5 * time.Minute

	// ProjectsDirectory is where the server reads project settings from.
	ProjectsDirectory = "/data/teamcity_server/datadir/config/projects"

	serverPort = 8111
)

// ServerPreviewer implements Previewer on top of a container runtime.
type ServerPreviewer struct {
	containerRuntime runtime.ContainerRuntime
	defaultImage     string
}

// NewServerPreviewer creates a previewer. An empty defaultImage falls back to
// DefaultImage.
func NewServerPreviewer(containerRuntime runtime.ContainerRuntime, defaultImage string) *ServerPreviewer {
	if defaultImage == "" {
		defaultImage = DefaultImage
	}
	return &ServerPreviewer{
		containerRuntime: containerRuntime,
		defaultImage:     defaultImage,
	}
}

type settings struct {
	image         string
	port          int
	readyMarker   string
	failureMarker string
	timeout       time.Duration
}

func (p *ServerPreviewer) resolve(cfg *blueprint.Preview) settings {
	s := settings{
		image:         p.defaultImage,
		port:          DefaultPort,
		readyMarker:   DefaultReadyMarker,
		failureMarker: DefaultFailureMarker,
		timeout:       DefaultTimeout,
	}
	if cfg == nil {
		return s
	}
	if cfg.Image != "" {
		s.image = cfg.Image
	}
	if cfg.Port != 0 {
		s.port = cfg.Port
	}
	if cfg.ReadyMarker != "" {
		s.readyMarker = cfg.ReadyMarker
	}
	if cfg.FailureMarker != "" {
		s.failureMarker = cfg.FailureMarker
	}
	if cfg.Timeout > 0 {
		s.timeout = cfg.Timeout
	}
	return s
}

// Preview implements Previewer.
func (p *ServerPreviewer) Preview(ctx context.Context, cfg *blueprint.Preview, dir string, hold bool) (*Result, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("settings directory does not exist: %s", dir)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for settings directory: %w", err)
	}

	s := p.resolve(cfg)
	slog.Info("Starting settings preview", "image", s.image, "port", s.port, "settingsDir", absDir)

	if err := p.containerRuntime.PullImage(ctx, s.image); err != nil {
		return nil, fmt.Errorf("failed to pull server image: %w", err)
	}

	reader, err := p.containerRuntime.RunContainer(ctx, runtime.RunOptions{
		Image:        s.image,
		VolumeMounts: map[string]string{absDir: ProjectsDirectory},
		Ports:        map[int]int{serverPort: s.port},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run container: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			slog.Error("Failed to clean up preview container", "error", err)
		}
	}()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go scan(reader, lines, scanErr, done)

	result := &Result{URL: fmt.Sprintf("http://localhost:%d", s.port)}
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("preview cancelled: %w", ctx.Err())
		case <-timer.C:
			return nil, fmt.Errorf("server did not report %q within %s", s.readyMarker, s.timeout)
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return nil, fmt.Errorf("error reading container output: %w", err)
				}
				return nil, fmt.Errorf("server exited before reporting %q", s.readyMarker)
			}
			result.Lines++
			slog.Debug("Server output", "line", line)
			if strings.Contains(line, s.failureMarker) {
				return nil, fmt.Errorf("server rejected the settings: %s", line)
			}
			if strings.Contains(line, s.readyMarker) {
				slog.Info("Settings loaded by preview server", "url", result.URL)
				if hold {
					waitForCancel(ctx, lines, s.failureMarker)
				}
				return result, nil
			}
		}
	}
}

// waitForCancel keeps the server running and its output logged until ctx is
// done or the server exits.
func waitForCancel(ctx context.Context, lines <-chan string, failureMarker string) {
	slog.Info("Preview server running, interrupt to stop")
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				slog.Warn("Preview server exited")
				return
			}
			if strings.Contains(line, failureMarker) {
				slog.Warn("Server output", "line", line)
			}
		}
	}
}

func scan(reader io.Reader, lines chan<- string, scanErr chan<- error, done <-chan struct{}) {
	defer close(lines)
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		clean := cleanDockerLogLine(scanner.Text())
		if clean == "" {
			continue
		}
		select {
		case lines <- clean:
		case <-done:
			return
		}
	}
	scanErr <- scanner.Err()
}

// ansiRegex is a compiled regex for ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// cleanDockerLogLine strips ANSI escape sequences and control characters and
// drops lines that are mostly binary.
func cleanDockerLogLine(line string) string {
	line = ansiRegex.ReplaceAllString(line, "")
	line = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, line)
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	printable := 0
	for _, r := range line {
		if r >= 32 && r != 0x7f && r != 0xfffd {
			printable++
		}
	}
	if float64(printable)/float64(len([]rune(line))) < 0.5 {
		return ""
	}
	return line
}
