package dutug

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/filetug/dutug/pkg/files/osfile"
	"github.com/filetug/dutug/pkg/fstree"
	"github.com/filetug/dutug/pkg/fsutils"
)

// LoadOptions controls how the tree is scanned before the first frame.
type LoadOptions struct {
	Parallel bool
	DryRun   bool
	Logger   *log.Logger
	// Feedback receives "loading..." and, when LiveProgress is set, an
	// in-place counter of scanned entries.
	Feedback     io.Writer
	LiveProgress bool
}

var buildTree = fstree.Build
var buildTreeParallel = fstree.BuildParallel

// LoadTree scans root through the local disk store.
func LoadTree(ctx context.Context, root string, o LoadOptions) (*fstree.Tree, error) {
	logger := o.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	feedback := o.Feedback
	if feedback == nil {
		feedback = io.Discard
	}

	store := osfile.NewStore(osfile.DryRun(o.DryRun), osfile.WithLogger(logger))
	buildOptions := []fstree.BuildOption{
		fstree.WithStore(store),
		fstree.WithLogger(logger),
	}

	_, _ = fmt.Fprint(feedback, "loading...")
	if o.LiveProgress {
		// Hide cursor for in-place updates; restore on exit.
		_, _ = fmt.Fprint(feedback, "\033[?25l")
		defer func() {
			_, _ = fmt.Fprint(feedback, "\r\033[2K\r\033[?25h")
		}()
		buildOptions = append(buildOptions, fstree.WithProgress(func(entries int64, bytes uint64) {
			_, _ = fmt.Fprintf(feedback, "\r\033[2Kloading... %d entries, %s\r", entries, fsutils.GetSizeShortText(bytes))
		}))
	} else {
		defer func() {
			_, _ = fmt.Fprintln(feedback)
		}()
	}

	build := buildTree
	if o.Parallel {
		build = buildTreeParallel
	}
	started := time.Now()
	tree, err := build(ctx, root, buildOptions...)
	if err != nil {
		return nil, err
	}
	logger.Printf("loaded %s in %v, total %s", tree.Path(), time.Since(started), fsutils.GetSizeShortText(tree.TotalSize()))
	return tree, nil
}
