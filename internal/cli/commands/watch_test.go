package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchLoop(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "index.html")
	other := filepath.Join(dir, "other.html")
	require.NoError(t, os.WriteFile(target, []byte("<p>one</p>"), 0o600))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()
	require.NoError(t, watcher.Add(dir))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, watcher, target, 50*time.Millisecond, slog.New(slog.DiscardHandler), func() {
			changes <- struct{}{}
		})
	}()

	// Writes to other files are ignored.
	require.NoError(t, os.WriteFile(other, []byte("<p>x</p>"), 0o600))
	select {
	case <-changes:
		t.Fatal("change reported for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}

	// A burst of writes is reported once.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte("<p>two</p>"), 0o600))
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-changes:
		t.Fatal("burst reported more than once")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}

func TestWatchCommand_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		dir := isolate(t)
		_, err := executeCommand(t, NewWatchCommand(), filepath.Join(dir, "nope.html"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot watch")
	})

	t.Run("directory", func(t *testing.T) {
		dir := isolate(t)
		_, err := executeCommand(t, NewWatchCommand(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}

func TestWatchCommand_StopsOnCancel(t *testing.T) {
	dir := isolate(t)
	page := writePage(t, dir, "index.html", brokenPage)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cmd := NewWatchCommand()
	cmd.SetContext(ctx)
	out, err := executeCommand(t, cmd, page)
	require.NoError(t, err)

	assert.Contains(t, out, "ACCESSIBILITY REPORT")
	assert.Contains(t, out, "Watching")
	assert.Contains(t, out, "index.html")
}
