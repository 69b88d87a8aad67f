package dutug

// helpLines is shown by '?' until the next key.
var helpLines = []string{
	"j / Down        next row",
	"k / Up          previous row",
	"PgDn / PgUp     one screen down / up",
	"g / Home        first row",
	"G / End         last row",
	"l / Right / Enter  open directory",
	"h / Left / Backspace  parent directory",
	"d               delete selected (asks y/N)",
	"?               this help",
	"q / Esc / Ctrl-C  quit",
}

func (nav *Navigator) drawHelp(s Surface) {
	for i, line := range helpLines {
		y := statusRows + i
		if y >= s.Height() {
			return
		}
		s.Print(1, y, nav.o.styles.Row, truncate(line, s.Width()-1))
	}
}
