// Package screentest has helpers for tests that draw on a tcell simulation screen.
package screentest

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

var NewSimulationScreen = tcell.NewSimulationScreen

// TB is the part of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// NewSimScreen creates an initialised simulation screen of the given size.
func NewSimScreen(t TB, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init simulation screen: %v", err)
	}
	s.SetSize(width, height)
	return s
}

// ReadLine reads a full line from the screen
func ReadLine(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		str, _, _ := screen.Get(x, y)
		if str == "" {
			// nothing drawn at this cell
			b.WriteRune(' ')
			continue
		}
		b.WriteString(str)
	}
	return b.String()
}

// StyleAt returns the style of a single cell.
func StyleAt(screen tcell.Screen, x, y int) tcell.Style {
	_, style, _ := screen.Get(x, y)
	return style
}
