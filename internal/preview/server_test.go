package preview

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"settingskit/pkg/blueprint"
	"settingskit/pkg/runtime"
)

// MockContainerRuntime is a mock implementation of the ContainerRuntime interface
type MockContainerRuntime struct {
	mock.Mock
}

func (m *MockContainerRuntime) PullImage(ctx context.Context, image string) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockContainerRuntime) RunContainer(ctx context.Context, opts runtime.RunOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, opts)
	if rc := args.Get(0); rc != nil {
		return rc.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// output is container output that records whether it was closed.
type output struct {
	io.Reader
	closed bool
}

func (o *output) Close() error {
	o.closed = true
	return nil
}

func newOutput(lines ...string) *output {
	return &output{Reader: strings.NewReader(strings.Join(lines, "\n") + "\n")}
}

// blockingOutput never produces data until closed.
type blockingOutput struct {
	pr *io.PipeReader
	pw *io.PipeWriter
}

func newBlockingOutput() *blockingOutput {
	pr, pw := io.Pipe()
	return &blockingOutput{pr: pr, pw: pw}
}

func (b *blockingOutput) Read(p []byte) (int, error) { return b.pr.Read(p) }

func (b *blockingOutput) Close() error {
	b.pw.Close()
	return b.pr.Close()
}

func TestServerPreviewer_Ready(t *testing.T) {
	dir := t.TempDir()
	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)

	out := newOutput(
		"\x1b[32mStarting TeamCity server\x1b[0m",
		"Loading projects",
		"TeamCity initialized, server UUID: 1234",
	)
	rt := &MockContainerRuntime{}
	rt.On("PullImage", mock.Anything, DefaultImage).Return(nil)
	rt.On("RunContainer", mock.Anything, mock.MatchedBy(func(opts runtime.RunOptions) bool {
		return opts.Image == DefaultImage &&
			opts.VolumeMounts[absDir] == ProjectsDirectory &&
			opts.Ports[8111] == 8112
	})).Return(out, nil)

	result, err := NewServerPreviewer(rt, "").Preview(context.Background(), &blueprint.Preview{Port: 8112}, dir, false)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8112", result.URL)
	assert.Equal(t, 3, result.Lines)
	assert.True(t, out.closed, "container must be cleaned up")
	rt.AssertExpectations(t)
}

func TestServerPreviewer_Failures(t *testing.T) {
	tests := []struct {
		name          string
		cfg           *blueprint.Preview
		setupMock     func(*MockContainerRuntime)
		errorContains string
	}{
		{
			name: "Pull image failure",
			setupMock: func(m *MockContainerRuntime) {
				m.On("PullImage", mock.Anything, DefaultImage).Return(errors.New("registry unreachable"))
			},
			errorContains: "failed to pull server image: registry unreachable",
		},
		{
			name: "Container run failure",
			setupMock: func(m *MockContainerRuntime) {
				m.On("PullImage", mock.Anything, DefaultImage).Return(nil)
				m.On("RunContainer", mock.Anything, mock.Anything).Return(nil, errors.New("port already allocated"))
			},
			errorContains: "failed to run container: port already allocated",
		},
		{
			name: "Failure marker",
			setupMock: func(m *MockContainerRuntime) {
				m.On("PullImage", mock.Anything, DefaultImage).Return(nil)
				m.On("RunContainer", mock.Anything, mock.Anything).Return(
					newOutput("Loading projects", "Failed to load project Acme: unknown runner type"), nil)
			},
			errorContains: "server rejected the settings: Failed to load project Acme",
		},
		{
			name: "Server exits early",
			setupMock: func(m *MockContainerRuntime) {
				m.On("PullImage", mock.Anything, DefaultImage).Return(nil)
				m.On("RunContainer", mock.Anything, mock.Anything).Return(newOutput("Starting"), nil)
			},
			errorContains: "server exited before reporting",
		},
		{
			name: "Timeout",
			cfg:  &blueprint.Preview{Image: "teamcity:test", Timeout: 50 * time.Millisecond},
			setupMock: func(m *MockContainerRuntime) {
				m.On("PullImage", mock.Anything, "teamcity:test").Return(nil)
				m.On("RunContainer", mock.Anything, mock.Anything).Return(newBlockingOutput(), nil)
			},
			errorContains: "within 50ms",
		},
		{
			name: "Custom markers",
			cfg:  &blueprint.Preview{ReadyMarker: "up", FailureMarker: "boom"},
			setupMock: func(m *MockContainerRuntime) {
				m.On("PullImage", mock.Anything, DefaultImage).Return(nil)
				m.On("RunContainer", mock.Anything, mock.Anything).Return(newOutput("boom"), nil)
			},
			errorContains: "server rejected the settings: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := &MockContainerRuntime{}
			tt.setupMock(rt)

			_, err := NewServerPreviewer(rt, "").Preview(context.Background(), tt.cfg, t.TempDir(), false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			rt.AssertExpectations(t)
		})
	}
}

func TestServerPreviewer_MissingDirectory(t *testing.T) {
	rt := &MockContainerRuntime{}

	_, err := NewServerPreviewer(rt, "").Preview(context.Background(), nil, "/nonexistent/path", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings directory does not exist")
	rt.AssertNotCalled(t, "PullImage", mock.Anything, mock.Anything)
}

func TestServerPreviewer_HoldUntilCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	out := &blockingOutput{pr: pr, pw: pw}
	rt := &MockContainerRuntime{}
	rt.On("PullImage", mock.Anything, "custom:1").Return(nil)
	rt.On("RunContainer", mock.Anything, mock.Anything).Return(out, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_, _ = io.WriteString(pw, "TeamCity initialized\n")
		// The scanner only reads this once the ready line was consumed.
		_, _ = io.WriteString(pw, "Agent connected\n")
		cancel()
	}()

	result, err := NewServerPreviewer(rt, "custom:1").Preview(ctx, nil, t.TempDir(), true)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8111", result.URL)
}

func TestCleanDockerLogLine(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain line", "plain line"},
		{"\x1b[1;31merror\x1b[0m", "error"},
		{"  padded  ", "padded"},
		{"\x01\x00\x00\x00", ""},
		{"", ""},
		{"���ok", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, cleanDockerLogLine(tt.input), "input %q", tt.input)
	}
}
