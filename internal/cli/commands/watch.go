package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce is how long the file must stay quiet before a re-check.
const watchDebounce = 200 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-check a local HTML file whenever it changes",
		Long: `Check a local HTML file, then check it again every time it is saved.

The report format and rule selection come from the configuration, as with
'leapa11y check'. Press Ctrl+C to stop.`,
		Example: `  # Watch a page while editing it
  leapa11y watch ./index.html

  # Only report level A issues
  leapa11y watch ./index.html --level A`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}

	cmd.Flags().String("level", "", "Only run rules at or below this level: A, AA, AAA")
	cmd.Flags().StringSlice("disable", nil, "Rule IDs to skip (comma separated)")

	return cmd
}

func runWatch(cmd *cobra.Command, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch %s: is a directory", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ctx := cmd.Context()
	check := func() {
		rep, err := checkTarget(ctx, abs, cmdCtx.Cfg, cmdCtx.Logger)
		if err != nil {
			cmdCtx.Renderer.Error(err.Error())
			return
		}
		if err := writeReport(cmd, cmdCtx, rep, ""); err != nil {
			cmdCtx.Renderer.Error(err.Error())
			return
		}
		status := "success"
		if rep.HasIssues() {
			status = "warning"
		}
		cmdCtx.Renderer.StatusLine(filepath.Base(abs), status,
			fmt.Sprintf("%d issues at %s", rep.TotalIssues, rep.Timestamp.Format("15:04:05")))
	}

	check()
	cmdCtx.Renderer.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", abs))

	err = watchLoop(ctx, watcher, abs, watchDebounce, cmdCtx.Logger, check)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchLoop calls onChange once path has been written or recreated and then
// left alone for debounce. It returns when ctx is done or the watcher closes.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, debounce time.Duration, logger *slog.Logger, onChange func()) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case <-timer.C:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
