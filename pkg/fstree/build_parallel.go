package fstree

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// BuildParallel produces the same tree as Build but lists directories
// concurrently. Listing always reads the local filesystem; the configured
// store is still used to inspect each object and to delete later on.
func BuildParallel(ctx context.Context, rootPath string, o ...BuildOption) (*Tree, error) {
	b := &builder{ctx: ctx, buildOptions: newBuildOptions(o)}
	rootPath = filepath.Clean(rootPath)
	info, err := b.statRoot(rootPath)
	if err != nil {
		return nil, err
	}
	root := &Entry{kind: KindDir, path: rootPath, info: info, children: map[string]*Entry{}}

	var mu sync.Mutex
	dirs := map[string]*Entry{rootPath: root}

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: b.workers,
	}
	walkErr := fastwalk.Walk(conf, rootPath, func(path string, d fs.DirEntry, err error) error {
		if filepath.Clean(path) == rootPath {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		parentPath := filepath.Dir(path)
		if err != nil {
			// A directory we already recorded could not be listed.
			b.logger.Printf("cannot list %s: %v", path, err)
			mu.Lock()
			defer mu.Unlock()
			delete(dirs, path)
			if parent := dirs[parentPath]; parent != nil {
				name := filepath.Base(path)
				parent.children[name] = newUnreadable(filepath.Join(parent.path, name))
			}
			return nil
		}

		mu.Lock()
		parent := dirs[parentPath]
		mu.Unlock()
		if parent == nil {
			// Parent turned unreadable while its listing was in flight.
			return skipIfDir(d)
		}

		entry := b.classify(filepath.Join(parent.path, d.Name()))

		mu.Lock()
		defer mu.Unlock()
		parent.children[d.Name()] = entry
		b.count(entry)
		if entry.kind == KindDir {
			dirs[path] = entry
			return nil
		}
		return skipIfDir(d)
	})
	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("failed to list %s: %w", rootPath, walkErr)
	}

	root.sumChildren()
	b.reportProgress()
	b.logger.Printf("scanned %s in parallel: %d entries, %d bytes", rootPath, b.entries, root.total)
	return &Tree{root: root, store: b.store}, nil
}

func skipIfDir(d fs.DirEntry) error {
	if d != nil && d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}
