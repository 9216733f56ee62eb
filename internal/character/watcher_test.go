package character

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "zephyr.json")

	r := NewRegistry(nil)
	require.NoError(t, r.LoadDir(context.Background(), dir))

	reloads := make(chan error, 64)
	w := NewWatcher(r, dir, nil)
	w.SetDelay(20 * time.Millisecond)
	w.onReload = func(err error) { reloads <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)

	// Ignored: not a record file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	copyFixture(t, dir, "nova.yaml")

	require.Eventually(t, func() bool { return r.Len() == 2 }, 5*time.Second, 10*time.Millisecond)

	// A broken file keeps the previous set.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{`), 0o644))
	deadline := time.After(5 * time.Second)
	for failed := false; !failed; {
		select {
		case err := <-reloads:
			failed = err != nil
		case <-deadline:
			t.Fatal("watcher did not report the failed reload")
		}
	}
	assert.Equal(t, 2, r.Len())
}

func TestWatcher_MissingDir(t *testing.T) {
	w := NewWatcher(NewRegistry(nil), filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, w.Run(context.Background()))
}
