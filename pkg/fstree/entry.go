package fstree

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// Kind tells which variant an Entry is.
type Kind uint8

const (
	KindUnreadable Kind = iota
	KindDir
	KindFile
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	case KindUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// SizeFunc converts metadata into the number of bytes an object occupies.
type SizeFunc func(info os.FileInfo) uint64

// Entry is one node of the scanned tree.
//
// Which fields are meaningful depends on kind: children, total and numFiles
// for directories, target for symlinks. An unreadable entry only keeps its
// path, for messages.
type Entry struct {
	kind     Kind
	path     string
	info     os.FileInfo
	sizer    SizeFunc
	target   string
	children map[string]*Entry
	total    uint64
	numFiles int
}

// Listing is one row of a directory's content.
type Listing struct {
	Name  string
	Size  uint64
	IsDir bool
	// SymlinkTarget is the link text of a symlink, empty for anything else.
	SymlinkTarget string
}

func newUnreadable(path string) *Entry {
	return &Entry{kind: KindUnreadable, path: path}
}

func (e *Entry) Kind() Kind   { return e.kind }
func (e *Entry) Path() string { return e.path }

func (e *Entry) Name() string {
	return filepath.Base(e.path)
}

// Info returns the metadata captured at scan time, nil for unreadable entries.
func (e *Entry) Info() os.FileInfo { return e.info }

func (e *Entry) IsDir() bool        { return e.kind == KindDir }
func (e *Entry) IsUnreadable() bool { return e.kind == KindUnreadable }

// SymlinkTarget returns the link text. It is never resolved.
func (e *Entry) SymlinkTarget() (string, bool) {
	if e.kind != KindSymlink {
		return "", false
	}
	return e.target, true
}

// Size reports the on-disk size. Directories return their cached total,
// files and symlinks are computed from metadata on every call. Unreadable
// entries have no size and report false.
func (e *Entry) Size() (uint64, bool) {
	switch e.kind {
	case KindDir:
		return e.total, true
	case KindFile, KindSymlink:
		return e.sizer(e.info), true
	case KindUnreadable:
		return 0, false
	default:
		return 0, false
	}
}

// NumChildren returns how many direct children a directory has.
func (e *Entry) NumChildren() int {
	if e.kind != KindDir {
		return 0
	}
	return e.numFiles
}

// Child returns the direct child called name.
func (e *Entry) Child(name string) (*Entry, bool) {
	if e.kind != KindDir {
		return nil, false
	}
	child, ok := e.children[name]
	return child, ok
}

// List returns one row per child in name order. Anything but a directory has
// no content and returns false; an empty directory returns an empty slice.
func (e *Entry) List() ([]Listing, bool) {
	if e.kind != KindDir {
		return nil, false
	}
	names := slices.Sorted(maps.Keys(e.children))
	listing := make([]Listing, 0, len(names))
	for _, name := range names {
		child := e.children[name]
		size, _ := child.Size()
		target, _ := child.SymlinkTarget()
		listing = append(listing, Listing{
			Name:          name,
			Size:          size,
			IsDir:         child.IsDir(),
			SymlinkTarget: target,
		})
	}
	return listing, true
}

// sumChildren recomputes every directory total below e from scratch.
func (e *Entry) sumChildren() uint64 {
	if e.kind != KindDir {
		size, _ := e.Size()
		return size
	}
	var total uint64
	for _, child := range e.children {
		total += child.sumChildren()
	}
	e.total = total
	e.numFiles = len(e.children)
	return total
}
