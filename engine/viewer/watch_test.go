package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingsWatcherReportsYAMLWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSettingsWatcher(dir)
	assert.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "viewer.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("intensity: subtle\n"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for a YAML write")
	}
}

func TestSettingsWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSettingsWatcher(dir)
	assert.NoError(t, err)
	defer w.Close()

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSettingsWatcherCloseWithUnconsumedBacklog(t *testing.T) {
	dir := t.TempDir()
	w, err := NewSettingsWatcher(dir)
	assert.NoError(t, err)

	// Overflow the Events buffer with nothing consuming it, so the watcher
	// goroutine may be blocked mid-send when Close arrives.
	for i := 0; i < 24; i++ {
		name := filepath.Join(dir, fmt.Sprintf("s%02d.yaml", i))
		assert.NoError(t, os.WriteFile(name, []byte("intensity: subtle\n"), 0o644))
	}
	time.Sleep(300 * time.Millisecond)

	assert.NoError(t, w.Close())

	// Draining finds the channel closed once the goroutine exits.
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-w.Events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSettingsWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewSettingsWatcher(t.TempDir())
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
