package osfile

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/filetug/dutug/pkg/files"
)

var osReadDir = os.ReadDir
var osStat = os.Stat
var osLstat = os.Lstat
var osReadlink = os.Readlink
var osRemove = os.Remove
var osRemoveAll = os.RemoveAll

var _ files.Store = (*Store)(nil)

// Store reads and deletes on the local disk.
type Store struct {
	dryRun bool
	logger *log.Logger
}

type StoreOption func(s *Store)

// DryRun makes Delete report success without touching the disk.
func DryRun(v bool) StoreOption {
	return func(s *Store) {
		s.dryRun = v
	}
}

func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(o ...StoreOption) *Store {
	s := &Store{
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range o {
		opt(s)
	}
	return s
}

func (s *Store) IsDryRun() bool {
	return s.dryRun
}

func (s *Store) Stat(name string) (os.FileInfo, error) {
	return osStat(name)
}

func (s *Store) Lstat(name string) (os.FileInfo, error) {
	return osLstat(name)
}

func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(name)
}

func (s *Store) Readlink(name string) (string, error) {
	return osReadlink(name)
}

func (s *Store) Delete(ctx context.Context, path string, recursive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.dryRun {
		s.logger.Printf("dry-run: skipping removal of %s (recursive=%v)", path, recursive)
		return nil
	}
	if recursive {
		return osRemoveAll(path)
	}
	return osRemove(path)
}
