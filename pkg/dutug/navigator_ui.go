package dutug

import (
	"fmt"
	"strings"

	"github.com/filetug/dutug/pkg/fsutils"
	"github.com/filetug/dutug/pkg/fstree"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// statusRows is how many screen rows are not available to the listing.
const statusRows = 1

const noFilesText = "<no files>"

func visibleRows(s Surface) int {
	return max(s.Height()-statusRows, 1)
}

// Draw renders the status line on top and the visible part of the listing
// below it.
func (nav *Navigator) Draw(s Surface) {
	s.Clear()
	nav.drawStatusBar(s, 0)
	switch {
	case nav.showHelp:
		nav.drawHelp(s)
	default:
		nav.drawListing(s)
	}
	s.Present()
}

func (nav *Navigator) drawListing(s Surface) {
	sel, ok := nav.Selection()
	if !ok {
		s.Print(0, 1, nav.o.styles.Row, noFilesText)
		return
	}
	last := min(nav.windowTop+visibleRows(s), len(nav.listing))
	for i := nav.windowTop; i < last; i++ {
		nav.drawRow(s, statusRows+i-nav.windowTop, i == sel, nav.listing[i])
	}
}

func (nav *Navigator) drawRow(s Surface, y int, selected bool, row fstree.Listing) {
	namePart, sizePart := formatRow(row)
	width := s.Width()

	nameStyle := nav.o.styles.Row
	switch {
	case selected:
		nameStyle = nav.o.styles.Selected
	case row.IsDir:
		nameStyle = nav.o.styles.Directory
	case row.SymlinkTarget != "":
		nameStyle = nav.o.styles.Symlink
	}
	sizeStyle := nav.o.styles.Row
	if selected {
		sizeStyle = nav.o.styles.Selected
		fill(s, 0, y, width, sizeStyle)
	}

	sizeX := max(width-runewidth.StringWidth(sizePart), 0)
	s.Print(0, y, nameStyle, truncate(namePart, sizeX-1))
	s.Print(sizeX, y, sizeStyle, sizePart)
}

func formatRow(row fstree.Listing) (namePart, sizePart string) {
	namePart = row.Name
	if row.SymlinkTarget != "" {
		namePart = fmt.Sprintf("%s -> %s", row.Name, row.SymlinkTarget)
	}
	marker := "  "
	if row.IsDir {
		marker = "->"
	}
	sizePart = fmt.Sprintf("%s %10s", marker, fsutils.GetSizeShortText(row.Size))
	return
}

// StatusText is the content of the status line without padding.
func (nav *Navigator) StatusText() string {
	root := nav.tree.Root()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s : %s", root.Path(), fsutils.GetSizeShortText(nav.tree.TotalSize()))

	items := root.NumChildren()
	if len(nav.pathStack) > 0 {
		// a level removed behind our back has nothing in it
		items = 0
		if entry, ok := nav.tree.Lookup(nav.pathStack); ok {
			items = entry.NumChildren()
			size, _ := entry.Size()
			fmt.Fprintf(&sb, " | %s : %s", entry.Path(), fsutils.GetSizeShortText(size))
		}
	}
	fmt.Fprintf(&sb, " (%d items)", items)
	if nav.o.dryRun {
		sb.WriteString(" [dry-run]")
	}
	return sb.String()
}

func (nav *Navigator) drawStatusBar(s Surface, y int) {
	width := s.Width()
	style := nav.o.styles.Status
	fill(s, 0, y, width, style)

	text := nav.StatusText()
	if nav.o.showHelpHint {
		const hint = "? help"
		hintX := width - len(hint)
		if runewidth.StringWidth(text)+1 < hintX {
			s.Print(hintX, y, style, hint)
		}
	}
	s.Print(0, y, style, truncate(text, width))
	if nav.message != "" {
		msgX := runewidth.StringWidth(text) + 1
		s.Print(msgX, y, nav.o.styles.Message, truncate(nav.message, width-msgX))
	}
}

func fill(s Surface, x, y, width int, style tcell.Style) {
	for col := x; col < width; col++ {
		s.PrintChar(col, y, style, ' ')
	}
}

// truncate shortens text to at most width display cells.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}
