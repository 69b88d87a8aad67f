package dutug

import (
	"cmp"
	"slices"

	"github.com/filetug/dutug/pkg/fstree"
)

// Reload lists the current level again, largest first. Ties keep name order.
// A level that no longer resolves, or is not a directory, shows as empty.
func (nav *Navigator) Reload() {
	listing, ok := nav.tree.List(nav.pathStack)
	if !ok {
		listing = nil
	}
	slices.SortStableFunc(listing, func(a, b fstree.Listing) int {
		return cmp.Compare(b.Size, a.Size)
	})
	nav.listing = listing

	sel, _ := nav.Selection()
	switch {
	case len(listing) == 0:
		nav.setSelection(noSelection)
	case sel == noSelection:
		nav.setSelection(0)
	default:
		nav.setSelection(min(sel, len(listing)-1))
	}
}

// Enter descends into the selected row when it is a directory. The window
// is left where it was; AlignViewport brings the selection back on screen.
func (nav *Navigator) Enter() bool {
	row, ok := nav.selectedRow()
	if !ok || !row.IsDir {
		return false
	}
	nav.pathStack = append(nav.pathStack, row.Name)
	nav.selStack = append(nav.selStack, noSelection)
	nav.Reload()
	return true
}

// Leave goes back to the parent level, which keeps the row it had selected.
func (nav *Navigator) Leave() bool {
	if len(nav.pathStack) == 0 {
		return false
	}
	nav.pathStack = nav.pathStack[:len(nav.pathStack)-1]
	nav.selStack = nav.selStack[:len(nav.selStack)-1]
	nav.Reload()
	return true
}

// Scroll moves the selection by distance rows, stopping at either end.
func (nav *Navigator) Scroll(distance int) {
	sel, ok := nav.Selection()
	if !ok {
		return
	}
	nav.setSelection(max(0, min(len(nav.listing)-1, sel+distance)))
}

func (nav *Navigator) ScrollToFirst() {
	nav.Scroll(-len(nav.listing))
}

func (nav *Navigator) ScrollToLast() {
	nav.Scroll(len(nav.listing))
}

// AlignViewport moves the window so that the selected row is one of the
// visibleRows rows on screen.
func (nav *Navigator) AlignViewport(visibleRows int) {
	sel, ok := nav.Selection()
	if !ok {
		return
	}
	visibleRows = max(visibleRows, 1)
	switch {
	case sel < nav.windowTop:
		nav.windowTop = sel
	case sel >= nav.windowTop+visibleRows:
		nav.windowTop = sel - visibleRows + 1
	}
}
