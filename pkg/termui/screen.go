// Package termui draws on a real terminal through tcell.
package termui

import (
	"github.com/filetug/dutug/pkg/dutug"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var _ dutug.Surface = (*Screen)(nil)

var newScreen = tcell.NewScreen

// Screen adapts a tcell.Screen to dutug.Surface.
type Screen struct {
	screen tcell.Screen
}

// Open initialises the terminal. Call Fini to give it back.
func Open() (*Screen, error) {
	screen, err := newScreen()
	if err != nil {
		return nil, err
	}
	if err = screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	return New(screen), nil
}

// New wraps an already initialised screen.
func New(screen tcell.Screen) *Screen {
	return &Screen{screen: screen}
}

// OpenSurface matches dutug.SurfaceFactory.
func OpenSurface() (dutug.Surface, func(), error) {
	s, err := Open()
	if err != nil {
		return nil, nil, err
	}
	return s, s.Fini, nil
}

func (s *Screen) Fini() {
	s.screen.Fini()
}

func (s *Screen) Clear() {
	s.screen.Clear()
}

func (s *Screen) Present() {
	s.screen.Show()
}

// Print writes text literally; tview colour tags in file names are escaped.
// tview.Print only takes a foreground colour, so the printed cells are
// restyled afterwards to carry the background and attributes too.
func (s *Screen) Print(x, y int, style tcell.Style, text string) {
	width, _ := s.screen.Size()
	if x >= width {
		return
	}
	fg, _, _ := style.Decompose()
	_, printed := tview.Print(s.screen, tview.Escape(text), x, y, width-x, tview.AlignLeft, fg)
	for cx := x; cx < x+printed; {
		str, _, cw := s.screen.Get(cx, y)
		s.screen.Put(cx, y, str, style)
		cx += max(cw, 1)
	}
}

func (s *Screen) PrintChar(x, y int, style tcell.Style, ch rune) {
	s.screen.SetContent(x, y, ch, nil, style)
}

func (s *Screen) Width() int {
	width, _ := s.screen.Size()
	return width
}

func (s *Screen) Height() int {
	_, height := s.screen.Size()
	return height
}

func (s *Screen) PollEvent(blocking bool) dutug.Event {
	if !blocking && !s.screen.HasPendingEvent() {
		return dutug.Event{Type: dutug.EventOther}
	}
	return s.convert(s.screen.PollEvent())
}

func (s *Screen) convert(ev tcell.Event) dutug.Event {
	switch ev := ev.(type) {
	case nil:
		return dutug.Event{Type: dutug.EventClosed}
	case *tcell.EventKey:
		return dutug.Event{Type: dutug.EventKey, Key: ev.Key(), Rune: ev.Rune()}
	case *tcell.EventResize:
		s.screen.Sync()
		return dutug.Event{Type: dutug.EventResize}
	default:
		return dutug.Event{Type: dutug.EventOther}
	}
}
