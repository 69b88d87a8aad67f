package ftsettings

import (
	"os"
	"path/filepath"
)

const UserDir = "~/.dutug"

const ConfigFileName = "config.yaml"

var osUserHomeDir = os.UserHomeDir

func GetUserDir() (string, error) {
	userHomeDir, err := osUserHomeDir()
	if err != nil {
		return UserDir, err
	}
	return filepath.Join(userHomeDir, UserDir[2:]), nil
}

// DefaultConfigPath returns ~/.dutug/config.yaml with the home directory resolved.
func DefaultConfigPath() (string, error) {
	userDir, err := GetUserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, ConfigFileName), nil
}
