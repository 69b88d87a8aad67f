package dutug

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Loop draws and reacts to events until the operator quits or the surface
// goes away.
func (nav *Navigator) Loop(ctx context.Context, s Surface) {
	for {
		nav.AlignViewport(visibleRows(s))
		nav.Draw(s)
		ev := s.PollEvent(true)
		switch ev.Type {
		case EventClosed:
			return
		case EventKey:
			if quit := nav.HandleKey(ctx, s, ev); quit {
				return
			}
		default:
			// resizes and anything else just redraw
		}
	}
}

// HandleKey applies one key press and reports whether it asked to quit.
func (nav *Navigator) HandleKey(ctx context.Context, s Surface, ev Event) (quit bool) {
	nav.message = ""
	if nav.showHelp {
		nav.showHelp = false
		return false
	}
	switch ev.Key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyDown:
		nav.Scroll(1)
	case tcell.KeyUp:
		nav.Scroll(-1)
	case tcell.KeyPgDn:
		nav.Scroll(visibleRows(s))
	case tcell.KeyPgUp:
		nav.Scroll(-visibleRows(s))
	case tcell.KeyHome:
		nav.ScrollToFirst()
	case tcell.KeyEnd:
		nav.ScrollToLast()
	case tcell.KeyRight, tcell.KeyEnter:
		nav.Enter()
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		nav.Leave()
	case tcell.KeyRune:
		return nav.handleRune(ctx, s, ev.Rune)
	}
	return false
}

func (nav *Navigator) handleRune(ctx context.Context, s Surface, r rune) (quit bool) {
	switch r {
	case 'q':
		return true
	case 'j':
		nav.Scroll(1)
	case 'k':
		nav.Scroll(-1)
	case 'g':
		nav.ScrollToFirst()
	case 'G':
		nav.ScrollToLast()
	case 'l':
		nav.Enter()
	case 'h':
		nav.Leave()
	case 'd':
		nav.DeleteSelected(ctx, s)
	case '?':
		nav.showHelp = true
	}
	return false
}
