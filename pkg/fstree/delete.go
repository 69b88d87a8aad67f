package fstree

import (
	"context"
	"fmt"
	"path/filepath"
)

// Delete removes the object at names from disk and from the tree, then
// subtracts its size from every directory on the way up. It returns the new
// total of the root.
//
// A missing entry, an unreadable entry or a failed removal leaves the tree
// untouched. Passing no names, or a path that crosses something other than
// a directory, is a programming error and panics.
func (t *Tree) Delete(ctx context.Context, names []string) (uint64, error) {
	if len(names) == 0 {
		panic("fstree: delete needs at least one path component")
	}
	return t.root.deleteChild(ctx, t, names)
}

func (e *Entry) deleteChild(ctx context.Context, t *Tree, names []string) (uint64, error) {
	name := names[0]
	child, ok := e.children[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, filepath.Join(e.path, name))
	}

	if len(names) > 1 {
		if child.kind != KindDir {
			panic(fmt.Sprintf("fstree: cannot descend into %s %s", child.kind, child.path))
		}
		before := child.total
		after, err := child.deleteChild(ctx, t, names[1:])
		if err != nil {
			return 0, err
		}
		e.total = e.total - before + after
		return e.total, nil
	}

	if child.kind == KindUnreadable {
		return 0, fmt.Errorf("%w: %s", ErrUnreadable, child.path)
	}
	size, _ := child.Size()
	if err := t.store.Delete(ctx, child.path, child.kind == KindDir); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrRemovalFailed, child.path, err)
	}
	delete(e.children, name)
	e.numFiles = len(e.children)
	e.total -= size
	return e.total, nil
}
