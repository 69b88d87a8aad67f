package dutug

import "github.com/gdamore/tcell/v2"

type EventType uint8

const (
	EventOther EventType = iota
	EventKey
	EventResize
	EventClosed
)

// Event is what a Surface reports from PollEvent. Key and Rune follow
// tcell's convention: Key is tcell.KeyRune for printable characters.
type Event struct {
	Type EventType
	Key  tcell.Key
	Rune rune
}

// IsRune reports whether the event is the printable key r.
func (e Event) IsRune(r rune) bool {
	return e.Type == EventKey && e.Key == tcell.KeyRune && e.Rune == r
}

// KeyEvent builds the Event of a special key such as tcell.KeyPgDn.
func KeyEvent(key tcell.Key) Event {
	return Event{Type: EventKey, Key: key}
}

// RuneEvent builds the Event of a printable key.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: tcell.KeyRune, Rune: r}
}

// Surface is the terminal the navigator draws on and reads keys from.
// Coordinates are cells; text running past the right edge is clipped.
type Surface interface {
	Clear()
	Present()
	Print(x, y int, style tcell.Style, text string)
	PrintChar(x, y int, style tcell.Style, ch rune)
	Width() int
	Height() int
	// PollEvent waits for the next event when blocking is set. Otherwise it
	// returns EventOther right away if nothing is pending.
	PollEvent(blocking bool) Event
}
