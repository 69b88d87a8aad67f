package ftsettings

import (
	"fmt"

	"github.com/filetug/dutug/pkg/fsutils"
)

// Colors holds tcell colour names, e.g. "navy" or "#ff8800".
type Colors struct {
	StatusFg    string `yaml:"status_fg,omitempty"`
	StatusBg    string `yaml:"status_bg,omitempty"`
	SelectedFg  string `yaml:"selected_fg,omitempty"`
	SelectedBg  string `yaml:"selected_bg,omitempty"`
	DirectoryFg string `yaml:"directory_fg,omitempty"`
	SymlinkFg   string `yaml:"symlink_fg,omitempty"`
	ErrorFg     string `yaml:"error_fg,omitempty"`
}

type Settings struct {
	ConfirmDelete bool   `yaml:"confirm_delete"`
	DryRun        bool   `yaml:"dry_run"`
	ParallelScan  bool   `yaml:"parallel_scan"`
	ShowHelpHint  bool   `yaml:"show_help_hint"`
	Colors        Colors `yaml:"colors"`
}

func Defaults() Settings {
	return Settings{
		ConfirmDelete: true,
		ShowHelpHint:  true,
		Colors: Colors{
			StatusFg:    "black",
			StatusBg:    "silver",
			SelectedFg:  "black",
			SelectedBg:  "aqua",
			DirectoryFg: "cornflowerblue",
			SymlinkFg:   "teal",
			ErrorFg:     "red",
		},
	}
}

var readYAMLFile = fsutils.ReadYAMLFile

// Load reads the settings file at filePath on top of Defaults. Keys missing
// from the file keep their default. A missing file is only an error when
// required is set.
func Load(filePath string, required bool) (Settings, error) {
	settings := Defaults()
	if filePath == "" {
		return settings, nil
	}
	if err := readYAMLFile(fsutils.ExpandHome(filePath), required, &settings); err != nil {
		return Defaults(), fmt.Errorf("failed to read settings from %s: %w", filePath, err)
	}
	return settings, nil
}
