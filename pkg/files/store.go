package files

import (
	"context"
	"os"
)

// Store is the filesystem access used to scan a tree and to remove entries from it.
type Store interface {
	// Stat follows symbolic links. It is used for the scanned root only.
	Stat(name string) (os.FileInfo, error)
	// Lstat describes the object itself, never a symlink's referent.
	Lstat(name string) (os.FileInfo, error)
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	// Delete removes path. With recursive set a directory is removed with all its content.
	Delete(ctx context.Context, path string, recursive bool) error
}
