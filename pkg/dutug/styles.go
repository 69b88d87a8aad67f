package dutug

import (
	"github.com/filetug/dutug/pkg/dutug/ftsettings"
	"github.com/gdamore/tcell/v2"
)

type Styles struct {
	Status    tcell.Style
	Row       tcell.Style
	Selected  tcell.Style
	Directory tcell.Style
	Symlink   tcell.Style
	Message   tcell.Style
	Prompt    tcell.Style
}

// NewStyles resolves colour names with tcell.GetColor. Unknown names fall
// back to the terminal default.
func NewStyles(colors ftsettings.Colors) Styles {
	row := tcell.StyleDefault
	return Styles{
		Status:    row.Foreground(tcell.GetColor(colors.StatusFg)).Background(tcell.GetColor(colors.StatusBg)),
		Row:       row,
		Selected:  row.Foreground(tcell.GetColor(colors.SelectedFg)).Background(tcell.GetColor(colors.SelectedBg)),
		Directory: row.Foreground(tcell.GetColor(colors.DirectoryFg)),
		Symlink:   row.Foreground(tcell.GetColor(colors.SymlinkFg)),
		Message:   row.Foreground(tcell.GetColor(colors.ErrorFg)).Background(tcell.GetColor(colors.StatusBg)).Bold(true),
		Prompt:    row.Foreground(tcell.ColorWhite).Bold(true),
	}
}

var DefaultStyles = NewStyles(ftsettings.Defaults().Colors)
