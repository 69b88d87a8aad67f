package fstree

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/filetug/dutug/pkg/files"
	"github.com/filetug/dutug/pkg/files/osfile"
	"github.com/filetug/dutug/pkg/fsutils"
)

// ProgressEvery is how many entries are scanned between two progress reports.
const ProgressEvery = 1024

// ProgressFunc receives the number of entries scanned so far and the bytes
// they add up to.
type ProgressFunc func(entries int64, bytes uint64)

// Tree is a scanned directory hierarchy. It is not safe for concurrent use.
type Tree struct {
	root  *Entry
	store files.Store
}

type buildOptions struct {
	store    files.Store
	sizer    SizeFunc
	progress ProgressFunc
	logger   *log.Logger
	workers  int
}

type BuildOption func(o *buildOptions)

// WithStore makes the scan and later deletions go through store.
func WithStore(store files.Store) BuildOption {
	return func(o *buildOptions) {
		o.store = store
	}
}

// WithSizer replaces fsutils.DiskUsage as the way file sizes are computed.
func WithSizer(sizer SizeFunc) BuildOption {
	return func(o *buildOptions) {
		o.sizer = sizer
	}
}

func WithProgress(progress ProgressFunc) BuildOption {
	return func(o *buildOptions) {
		o.progress = progress
	}
}

func WithLogger(logger *log.Logger) BuildOption {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers sets the number of goroutines BuildParallel walks with.
// Zero picks a default based on the number of CPUs.
func WithWorkers(n int) BuildOption {
	return func(o *buildOptions) {
		o.workers = n
	}
}

func newBuildOptions(o []BuildOption) buildOptions {
	opts := buildOptions{
		sizer:  fsutils.DiskUsage,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range o {
		opt(&opts)
	}
	if opts.store == nil {
		opts.store = osfile.NewStore(osfile.WithLogger(opts.logger))
	}
	return opts
}

type builder struct {
	ctx context.Context
	buildOptions
	entries int64
	bytes   uint64
}

// Build scans rootPath recursively, one directory at a time. Symbolic links
// are recorded but never followed. Anything that cannot be inspected
// becomes an unreadable entry; only a root that cannot be listed fails the
// build.
func Build(ctx context.Context, rootPath string, o ...BuildOption) (*Tree, error) {
	b := &builder{ctx: ctx, buildOptions: newBuildOptions(o)}
	rootPath = filepath.Clean(rootPath)
	info, err := b.statRoot(rootPath)
	if err != nil {
		return nil, err
	}
	children, err := b.readDir(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", rootPath, err)
	}
	root := b.newDir(rootPath, info, children)
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	b.reportProgress()
	b.logger.Printf("scanned %s: %d entries, %d bytes", rootPath, b.entries, root.total)
	return &Tree{root: root, store: b.store}, nil
}

func (b *builder) statRoot(rootPath string) (os.FileInfo, error) {
	info, err := b.store.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, rootPath)
	}
	return info, nil
}

func (b *builder) readDir(dirPath string) (map[string]*Entry, error) {
	dirEntries, err := b.store.ReadDir(b.ctx, dirPath)
	if err != nil {
		return nil, err
	}
	children := make(map[string]*Entry, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		children[name] = b.newEntry(filepath.Join(dirPath, name))
	}
	return children, nil
}

func (b *builder) newDir(dirPath string, info os.FileInfo, children map[string]*Entry) *Entry {
	dir := &Entry{kind: KindDir, path: dirPath, info: info, children: children}
	for _, child := range children {
		size, _ := child.Size()
		dir.total += size
	}
	dir.numFiles = len(children)
	return dir
}

// newEntry classifies the object at path and, for directories, recurses.
func (b *builder) newEntry(path string) *Entry {
	entry := b.classify(path)
	if entry.kind == KindDir {
		children, err := b.readDir(path)
		if err != nil {
			b.logger.Printf("cannot list %s: %v", path, err)
			entry = newUnreadable(path)
		} else {
			entry = b.newDir(path, entry.info, children)
		}
	}
	b.count(entry)
	return entry
}

// classify inspects path without following links. Directories come back
// without children.
func (b *builder) classify(path string) *Entry {
	info, err := b.store.Lstat(path)
	if err != nil {
		b.logger.Printf("cannot stat %s: %v", path, err)
		return newUnreadable(path)
	}
	mode := info.Mode()
	switch {
	case mode.IsDir():
		return &Entry{kind: KindDir, path: path, info: info, children: map[string]*Entry{}}
	case mode.IsRegular():
		return &Entry{kind: KindFile, path: path, info: info, sizer: b.sizer}
	case mode&os.ModeSymlink != 0:
		target, err := b.store.Readlink(path)
		if err != nil {
			b.logger.Printf("cannot read link %s: %v", path, err)
			return newUnreadable(path)
		}
		return &Entry{kind: KindSymlink, path: path, info: info, sizer: b.sizer, target: target}
	default:
		return newUnreadable(path)
	}
}

func (b *builder) count(entry *Entry) {
	b.entries++
	if entry.kind == KindFile || entry.kind == KindSymlink {
		size, _ := entry.Size()
		b.bytes += size
	}
	if b.entries%ProgressEvery == 0 {
		b.reportProgress()
	}
}

func (b *builder) reportProgress() {
	if b.progress != nil {
		b.progress(b.entries, b.bytes)
	}
}

func (t *Tree) Root() *Entry { return t.root }

// Path returns the path the tree was built from.
func (t *Tree) Path() string { return t.root.path }

func (t *Tree) TotalSize() uint64 { return t.root.total }

// Lookup walks names from the root. An empty slice returns the root.
func (t *Tree) Lookup(names []string) (*Entry, bool) {
	entry := t.root
	for _, name := range names {
		child, ok := entry.Child(name)
		if !ok {
			return nil, false
		}
		entry = child
	}
	return entry, true
}

// List returns the content of the directory at names, false when there is
// no directory there.
func (t *Tree) List(names []string) ([]Listing, bool) {
	entry, ok := t.Lookup(names)
	if !ok {
		return nil, false
	}
	return entry.List()
}
