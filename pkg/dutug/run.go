package dutug

import (
	"context"
	"io"
	"log"

	"github.com/filetug/dutug/pkg/dutug/ftsettings"
)

// Config is everything Run needs besides the terminal.
type Config struct {
	Root     string
	Settings ftsettings.Settings
	Logger   *log.Logger
	Feedback io.Writer
	// LiveProgress turns the loading message into a live counter. Callers
	// set it when Feedback is a terminal.
	LiveProgress bool
}

// SurfaceFactory opens the terminal. The returned func restores it.
type SurfaceFactory func() (Surface, func(), error)

// Run scans cfg.Root, then takes over the terminal and drives the navigator
// until the operator quits. Scan errors are returned before the terminal is
// touched.
func Run(ctx context.Context, cfg Config, newSurface SurfaceFactory) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tree, err := LoadTree(ctx, cfg.Root, LoadOptions{
		Parallel:     cfg.Settings.ParallelScan,
		DryRun:       cfg.Settings.DryRun,
		Logger:       logger,
		Feedback:     cfg.Feedback,
		LiveProgress: cfg.LiveProgress,
	})
	if err != nil {
		return err
	}

	s, restore, err := newSurface()
	if err != nil {
		return err
	}
	defer restore()

	nav := NewNavigator(tree,
		ConfirmDelete(cfg.Settings.ConfirmDelete),
		DryRunLabel(cfg.Settings.DryRun),
		ShowHelpHint(cfg.Settings.ShowHelpHint),
		WithStyles(NewStyles(cfg.Settings.Colors)),
		WithLogger(logger),
	)
	nav.Loop(ctx, s)
	logger.Printf("session ended at %v", nav.PathStack())
	return nil
}
