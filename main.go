package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/filetug/dutug/pkg/dutug"
	"github.com/filetug/dutug/pkg/dutug/ftsettings"
	"github.com/filetug/dutug/pkg/fsutils"
	"github.com/filetug/dutug/pkg/profiling"
	"github.com/filetug/dutug/pkg/report"
	"github.com/filetug/dutug/pkg/termui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var version = "dev"

var osExit = os.Exit
var runUI = dutug.Run
var openSurface dutug.SurfaceFactory = termui.OpenSurface

func main() {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			osExit(1)
		}
	}()
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		osExit(1)
	}
}

type options struct {
	configPath string
	dryRun     bool
	noConfirm  bool
	parallel   bool
	list       bool
	logPath    string
	cpuProfile string
	memProfile string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "dutug [flags] PATH",
		Short: "Browse disk usage of a directory and delete what takes the space",
		Long: heredoc.Doc(`
			dutug scans PATH, adds up the disk space every file and directory
			occupies (allocated blocks, not apparent size) and opens an
			interactive listing sorted by size.

			Keys:
			  j/k, arrows      move selection
			  PgDn/PgUp        move one screen
			  l/h, Enter/Bksp  open directory / go back
			  d                delete selected entry
			  ?                help
			  q                quit

			Settings are read from ~/.dutug/config.yaml; flags given on the
			command line win over the file.
		`),
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, o, args[0])
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVar(&o.configPath, "config", "", "settings `file` (default ~/.dutug/config.yaml)")
	flags.BoolVar(&o.dryRun, "dry-run", false, "pretend to delete: update totals but leave the disk alone")
	flags.BoolVar(&o.noConfirm, "no-confirm", false, "delete without asking y/N")
	flags.BoolVar(&o.parallel, "parallel", false, "scan directories concurrently")
	flags.BoolVar(&o.list, "list", false, "print the listing of PATH and exit")
	flags.StringVar(&o.logPath, "log", "", "append log messages to `file`")
	flags.StringVar(&o.cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flags.StringVar(&o.memProfile, "memprofile", "", "write memory profile to `file`")
	return cmd
}

func execute(cmd *cobra.Command, o options, rootArg string) error {
	settings, err := loadSettings(cmd, o)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(o.logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	if o.cpuProfile != "" {
		stopCPUProfiling := profiling.DoCPUProfiling(o.cpuProfile)
		defer stopCPUProfiling()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.memProfile != "" {
		writeMemProfile := profiling.DoMemProfiling(ctx, o.memProfile)
		defer writeMemProfile()
	}

	root := filepath.Clean(fsutils.ExpandHome(rootArg))
	if o.list {
		return printListing(ctx, cmd.OutOrStdout(), root, settings, logger)
	}

	stderr := cmd.ErrOrStderr()
	return runUI(ctx, dutug.Config{
		Root:         root,
		Settings:     settings,
		Logger:       logger,
		Feedback:     stderr,
		LiveProgress: isTerminal(stderr),
	}, openSurface)
}

// loadSettings applies defaults, then the settings file, then flags that were
// given explicitly.
func loadSettings(cmd *cobra.Command, o options) (ftsettings.Settings, error) {
	configPath := o.configPath
	required := configPath != ""
	if configPath == "" {
		// Without a home directory there is simply no settings file.
		configPath, _ = ftsettings.DefaultConfigPath()
	}
	settings, err := ftsettings.Load(configPath, required)
	if err != nil {
		return settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		settings.DryRun = o.dryRun
	}
	if flags.Changed("no-confirm") {
		settings.ConfirmDelete = !o.noConfirm
	}
	if flags.Changed("parallel") {
		settings.ParallelScan = o.parallel
	}
	return settings, nil
}

func openLog(logPath string) (logger *log.Logger, closeLog func(), err error) {
	if logPath == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(fsutils.ExpandHome(logPath), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger = log.New(f, "dutug ", log.LstdFlags|log.Lmicroseconds)
	return logger, func() { _ = f.Close() }, nil
}

func printListing(ctx context.Context, w io.Writer, root string, settings ftsettings.Settings, logger *log.Logger) error {
	tree, err := dutug.LoadTree(ctx, root, dutug.LoadOptions{
		Parallel: settings.ParallelScan,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return report.Print(w, tree, nil)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
