package dutug

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// fakeSurface is an in-memory Surface that replays scripted events and
// reports EventClosed once they run out.
type fakeSurface struct {
	width, height int
	cells         [][]rune
	styles        [][]tcell.Style
	events        []Event
	presented     int
	notices       []string
}

func newFakeSurface(width, height int, events ...Event) *fakeSurface {
	s := &fakeSurface{width: width, height: height, events: events}
	s.Clear()
	return s
}

func (s *fakeSurface) Clear() {
	s.cells = make([][]rune, s.height)
	s.styles = make([][]tcell.Style, s.height)
	for y := range s.cells {
		s.cells[y] = []rune(strings.Repeat(" ", s.width))
		s.styles[y] = make([]tcell.Style, s.width)
	}
}

func (s *fakeSurface) Present() {
	s.presented++
	s.notices = append(s.notices, s.Line(1))
}

func (s *fakeSurface) Print(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.PrintChar(x, y, style, r)
		x++
	}
}

func (s *fakeSurface) PrintChar(x, y int, style tcell.Style, ch rune) {
	if y < 0 || y >= s.height || x < 0 || x >= s.width {
		return
	}
	s.cells[y][x] = ch
	s.styles[y][x] = style
}

func (s *fakeSurface) Width() int  { return s.width }
func (s *fakeSurface) Height() int { return s.height }

func (s *fakeSurface) PollEvent(blocking bool) Event {
	if len(s.events) == 0 {
		if !blocking {
			return Event{Type: EventOther}
		}
		return Event{Type: EventClosed}
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

// Line returns row y with trailing blanks removed.
func (s *fakeSurface) Line(y int) string {
	return strings.TrimRight(string(s.cells[y]), " ")
}
