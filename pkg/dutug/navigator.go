package dutug

import (
	"io"
	"log"
	"slices"

	"github.com/filetug/dutug/pkg/fstree"
)

const noSelection = -1

// Navigator is the interactive state over a built tree: which level is shown,
// which row is selected on every level entered so far, and the first row
// currently on screen.
type Navigator struct {
	tree *fstree.Tree
	o    navigatorOptions

	pathStack []string
	selStack  []int
	listing   []fstree.Listing
	windowTop int

	message  string
	showHelp bool
}

type navigatorOptions struct {
	confirmDelete bool
	dryRun        bool
	showHelpHint  bool
	styles        Styles
	logger        *log.Logger
}

type NavigatorOption func(o *navigatorOptions)

// ConfirmDelete sets whether deletion asks for a y/N answer first.
func ConfirmDelete(v bool) NavigatorOption {
	return func(o *navigatorOptions) {
		o.confirmDelete = v
	}
}

// DryRunLabel marks the status line with [dry-run]. It does not change what
// deletion does; that is up to the tree's store.
func DryRunLabel(v bool) NavigatorOption {
	return func(o *navigatorOptions) {
		o.dryRun = v
	}
}

func ShowHelpHint(v bool) NavigatorOption {
	return func(o *navigatorOptions) {
		o.showHelpHint = v
	}
}

func WithStyles(styles Styles) NavigatorOption {
	return func(o *navigatorOptions) {
		o.styles = styles
	}
}

func WithLogger(logger *log.Logger) NavigatorOption {
	return func(o *navigatorOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func NewNavigator(tree *fstree.Tree, options ...NavigatorOption) *Navigator {
	nav := &Navigator{
		tree:     tree,
		selStack: []int{noSelection},
		o: navigatorOptions{
			confirmDelete: true,
			styles:        DefaultStyles,
			logger:        log.New(io.Discard, "", 0),
		},
	}
	for _, option := range options {
		option(&nav.o)
	}
	nav.Reload()
	return nav
}

// Listing returns the rows of the current level, largest first.
func (nav *Navigator) Listing() []fstree.Listing {
	return nav.listing
}

// PathStack returns the names from the root down to the current level.
func (nav *Navigator) PathStack() []string {
	return slices.Clone(nav.pathStack)
}

// Selection returns the selected row of the current level, false when the
// level has no rows.
func (nav *Navigator) Selection() (int, bool) {
	sel := nav.selStack[len(nav.selStack)-1]
	return sel, sel != noSelection
}

func (nav *Navigator) setSelection(sel int) {
	nav.selStack[len(nav.selStack)-1] = sel
}

func (nav *Navigator) WindowTop() int {
	return nav.windowTop
}

// Message returns the one-line note shown after the status line, if any.
func (nav *Navigator) Message() string {
	return nav.message
}

func (nav *Navigator) selectedRow() (fstree.Listing, bool) {
	sel, ok := nav.Selection()
	if !ok || sel >= len(nav.listing) {
		return fstree.Listing{}, false
	}
	return nav.listing[sel], true
}
