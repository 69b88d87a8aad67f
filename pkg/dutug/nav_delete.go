package dutug

import (
	"context"
	"fmt"

	"github.com/filetug/dutug/pkg/fsutils"
)

// DeleteSelected removes the selected row from disk and from the tree.
// When confirmation is on, it blocks for exactly one more key and only a
// 'y' goes ahead. Whatever happens, the current level is reloaded.
func (nav *Navigator) DeleteSelected(ctx context.Context, s Surface) {
	row, ok := nav.selectedRow()
	if !ok {
		return
	}

	nav.pathStack = append(nav.pathStack, row.Name)
	defer func() {
		nav.pathStack = nav.pathStack[:len(nav.pathStack)-1]
		nav.Reload()
	}()

	entry, found := nav.tree.Lookup(nav.pathStack)
	if !found {
		nav.message = fmt.Sprintf("%s no longer exists", row.Name)
		return
	}
	if entry.IsUnreadable() {
		nav.message = fmt.Sprintf("cannot delete unreadable %s", entry.Path())
		return
	}

	if nav.o.confirmDelete && !nav.confirm(s, entry.Path()) {
		nav.o.logger.Printf("delete of %s cancelled", entry.Path())
		return
	}

	nav.showNotice(s, "deleting... this may take a little while")
	nav.o.logger.Printf("deleting %s", entry.Path())
	total, err := nav.tree.Delete(ctx, nav.pathStack)
	if err != nil {
		nav.o.logger.Printf("delete of %s failed: %v", entry.Path(), err)
		nav.message = err.Error()
		return
	}
	nav.o.logger.Printf("deleted %s, root total now %s", entry.Path(), fsutils.GetSizeShortText(total))
}

// confirm shows the y/N prompt and waits for one key. Non-key events such as
// resizes are skipped; a closed surface counts as no.
func (nav *Navigator) confirm(s Surface, path string) bool {
	nav.showNotice(s, fmt.Sprintf("Really delete %s ? (y/N)", path))
	for {
		ev := s.PollEvent(true)
		switch ev.Type {
		case EventKey:
			return ev.IsRune('y')
		case EventClosed:
			return false
		default:
			continue
		}
	}
}

func (nav *Navigator) showNotice(s Surface, text string) {
	s.Clear()
	nav.drawStatusBar(s, 0)
	s.Print(0, 1, nav.o.styles.Prompt, text)
	s.Present()
}
