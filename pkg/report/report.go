// Package report prints a directory listing without taking over the terminal.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/filetug/dutug/pkg/fstree"
	"github.com/filetug/dutug/pkg/fsutils"
)

const sizeWidth = 11

type styles struct {
	header lipgloss.Style
	size   lipgloss.Style
	pct    lipgloss.Style
	dir    lipgloss.Style
	link   lipgloss.Style
	name   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().Bold(true),
		size:   r.NewStyle().Width(sizeWidth).Align(lipgloss.Right).Foreground(lipgloss.Color("45")),
		pct:    r.NewStyle().Width(7).Align(lipgloss.Right).Foreground(lipgloss.Color("245")),
		dir:    r.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		link:   r.NewStyle().Foreground(lipgloss.Color("42")),
		name:   r.NewStyle(),
	}
}

// Print writes the rows under names, largest first, followed by a total line.
// Colours are only emitted when w is a terminal.
func Print(w io.Writer, tree *fstree.Tree, names []string) error {
	entry, ok := tree.Lookup(names)
	if !ok {
		return fmt.Errorf("%w: %s", fstree.ErrNotFound, strings.Join(names, "/"))
	}
	listing, _ := entry.List()
	slices.SortStableFunc(listing, func(a, b fstree.Listing) int {
		return cmp.Compare(b.Size, a.Size)
	})
	total, _ := entry.Size()

	st := newStyles(lipgloss.NewRenderer(w))
	var sb strings.Builder
	sb.WriteString(st.header.Render(entry.Path()))
	sb.WriteString("\n")
	for _, row := range listing {
		sb.WriteString(st.size.Render(fsutils.GetSizeShortText(row.Size)))
		sb.WriteString(st.pct.Render(percent(row.Size, total)))
		sb.WriteString("  ")
		switch {
		case row.IsDir:
			sb.WriteString(st.dir.Render(row.Name + "/"))
		case row.SymlinkTarget != "":
			sb.WriteString(st.link.Render(row.Name + " -> " + row.SymlinkTarget))
		default:
			sb.WriteString(st.name.Render(row.Name))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(st.size.Render(fsutils.GetSizeShortText(total)))
	sb.WriteString(st.header.Render(fmt.Sprintf("  total, %d entries", len(listing))))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func percent(size, total uint64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(size)/float64(total))
}
