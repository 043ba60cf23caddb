package runtime

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogs struct {
	io.Reader
	closed atomic.Bool
}

func (l *fakeLogs) Close() error {
	l.closed.Store(true)
	return nil
}

// fakeContainerAPI serves logs once release is closed, or fails when its
// context is cancelled first.
type fakeContainerAPI struct {
	logs    *fakeLogs
	entered chan struct{}
	release chan struct{}

	mu      sync.Mutex
	stopped int
	removed int
}

func newFakeContainerAPI(output []byte) *fakeContainerAPI {
	return &fakeContainerAPI{
		logs:    &fakeLogs{Reader: bytes.NewReader(output)},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (f *fakeContainerAPI) ContainerLogs(ctx context.Context, _ string, _ container.LogsOptions) (io.ReadCloser, error) {
	close(f.entered)
	select {
	case <-f.release:
		return f.logs, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeContainerAPI) ContainerStop(context.Context, string, container.StopOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
	return nil
}

func (f *fakeContainerAPI) ContainerRemove(context.Context, string, container.RemoveOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed++
	return nil
}

func framed(t *testing.T, stdout, stderr string) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := stdcopy.NewStdWriter(&buf, stdcopy.Stdout).Write([]byte(stdout))
	require.NoError(t, err)
	_, err = stdcopy.NewStdWriter(&buf, stdcopy.Stderr).Write([]byte(stderr))
	require.NoError(t, err)
	return buf.Bytes()
}

func readAsync(r io.Reader) <-chan error {
	done := make(chan error, 1)
	go func() {
		_, err := io.ReadAll(r)
		done <- err
	}()
	return done
}

func TestContainerReader_ReadsDemultiplexedLogs(t *testing.T) {
	api := newFakeContainerAPI(framed(t, "server starting\n", "warning\n"))
	close(api.release)
	cr := newContainerReader(context.Background(), api, "c1")

	out, err := io.ReadAll(cr)
	require.NoError(t, err)
	assert.Equal(t, "server starting\nwarning\n", string(out))

	require.NoError(t, cr.Close())
	require.NoError(t, cr.Close())
	assert.True(t, api.logs.closed.Load())
	assert.Equal(t, 1, api.stopped)
	assert.Equal(t, 1, api.removed)
}

func TestContainerReader_CloseWhileAttaching(t *testing.T) {
	api := newFakeContainerAPI(nil)
	cr := newContainerReader(context.Background(), api, "c1")

	done := readAsync(cr)
	<-api.entered
	require.NoError(t, cr.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	case <-time.After(5 * time.Second):
		t.Fatal("Read did not return after Close")
	}
	assert.Equal(t, 1, api.removed)
}

func TestContainerReader_LogsArrivingAfterCloseAreClosed(t *testing.T) {
	api := newFakeContainerAPI(nil)
	blocking := &blockingLogsAPI{fakeContainerAPI: api}
	cr := newContainerReader(context.Background(), blocking, "c1")

	done := readAsync(cr)
	<-api.entered
	require.NoError(t, cr.Close())
	close(api.release)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	case <-time.After(5 * time.Second):
		t.Fatal("Read did not return")
	}
	assert.True(t, api.logs.closed.Load(), "a stream opened after Close must be closed")
}

// blockingLogsAPI returns the log stream only once released, even when the
// context is cancelled.
type blockingLogsAPI struct {
	*fakeContainerAPI
}

func (b *blockingLogsAPI) ContainerLogs(_ context.Context, _ string, _ container.LogsOptions) (io.ReadCloser, error) {
	close(b.entered)
	<-b.release
	return b.logs, nil
}
