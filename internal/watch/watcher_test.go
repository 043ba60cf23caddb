package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	changes := make(chan struct{}, 10)
	w, err := New(path, func() { changes <- struct{}{} }, WithDebounce(testDebounce))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })
	return changes
}

func waitForChange(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change notification")
	}
}

func assertNoChange(t *testing.T, changes <-chan struct{}) {
	t.Helper()
	select {
	case <-changes:
		t.Fatal("unexpected change notification")
	case <-time.After(10 * testDebounce):
	}
}

func TestWatcher_ReportsContentChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metadata: {name: a}\n"), 0644))

	changes := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("metadata: {name: b}\n"), 0644))
	waitForChange(t, changes)

	// Same content again is not a change.
	require.NoError(t, os.WriteFile(path, []byte("metadata: {name: b}\n"), 0644))
	assertNoChange(t, changes)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("v0\n"), 0644))

	changes := startWatcher(t, path)

	for _, content := range []string{"v1\n", "v2\n", "v3\n"} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	waitForChange(t, changes)
	assertNoChange(t, changes)
}

func TestWatcher_AtomicSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("before\n"), 0644))

	changes := startWatcher(t, path)

	tmp := filepath.Join(dir, ".settings.yaml.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("after\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))
	waitForChange(t, changes)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0644))

	changes := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x\n"), 0644))
	assertNoChange(t, changes)
}

func TestWatcher_FileCreatedLater(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	changes := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0644))
	waitForChange(t, changes)
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content\n"), 0644))

	w, err := New(path, func() {}, WithDebounce(testDebounce))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "settings.yaml"), func() {})
	require.NoError(t, err)

	err = w.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
