package fstree

import "errors"

var (
	ErrRootNotDirectory = errors.New("root is not a directory")
	ErrNotFound         = errors.New("no such entry")
	ErrUnreadable       = errors.New("entry is unreadable")
	ErrRemovalFailed    = errors.New("removal failed")
)
