package fstree

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/filetug/dutug/pkg/files"
	"github.com/filetug/dutug/pkg/fsutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

// assertTotals checks every directory total equals the sum of its children.
func assertTotals(t *testing.T, e *Entry) {
	t.Helper()
	if e.kind != KindDir {
		return
	}
	var sum uint64
	for _, child := range e.children {
		size, _ := child.Size()
		sum += size
		assertTotals(t, child)
	}
	assert.Equal(t, sum, e.total, "total of %s", e.path)
	assert.Equal(t, len(e.children), e.numFiles, "child count of %s", e.path)
}

func dirInfo(name string) os.FileInfo {
	return files.NewFileInfo(files.NewDirEntry(name, os.ModeDir|0o755))
}

func fileInfo(name string, size int64) os.FileInfo {
	return files.NewFileInfo(files.NewDirEntry(name, 0o644), files.Size(size))
}

func linkInfo(name string, size int64) os.FileInfo {
	return files.NewFileInfo(files.NewDirEntry(name, os.ModeSymlink|0o777), files.Size(size))
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "f"), 1000)
	writeFile(t, filepath.Join(root, "b"), 500)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	tree, err := Build(context.Background(), root, WithSizer(fsutils.ApparentSize))
	require.NoError(t, err)

	assert.Equal(t, filepath.Clean(root), tree.Path())
	assert.Equal(t, uint64(1500), tree.TotalSize())
	assertTotals(t, tree.Root())

	listing, ok := tree.List(nil)
	require.True(t, ok)
	assert.Equal(t, []Listing{
		{Name: "a", Size: 1000, IsDir: true},
		{Name: "b", Size: 500},
		{Name: "empty", Size: 0, IsDir: true},
	}, listing)

	listing, ok = tree.List([]string{"empty"})
	assert.True(t, ok)
	assert.Empty(t, listing)

	_, ok = tree.List([]string{"b"})
	assert.False(t, ok)
}

func TestBuild_DiskUsageByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f"), 10000)

	tree, err := Build(context.Background(), root)
	require.NoError(t, err)

	info, err := os.Lstat(filepath.Join(root, "f"))
	require.NoError(t, err)
	assert.Equal(t, fsutils.DiskUsage(info), tree.TotalSize())
}

func TestBuild_RootErrors(t *testing.T) {
	t.Run("not_a_directory", func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "f")
		writeFile(t, filePath, 1)

		tree, err := Build(context.Background(), filePath)
		assert.Nil(t, tree)
		assert.ErrorIs(t, err, ErrRootNotDirectory)
	})

	t.Run("missing", func(t *testing.T) {
		tree, err := Build(context.Background(), filepath.Join(t.TempDir(), "nope"))
		assert.Nil(t, tree)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("cannot_list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := files.NewMockStore(ctrl)
		store.EXPECT().Stat("/r").Return(dirInfo("r"), nil)
		store.EXPECT().ReadDir(gomock.Any(), "/r").Return(nil, os.ErrPermission)

		tree, err := Build(context.Background(), "/r", WithStore(store))
		assert.Nil(t, tree)
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("cancelled", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "f"), 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		tree, err := Build(ctx, root)
		assert.Nil(t, tree)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBuild_Symlink(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "big"), 4096)
	if err := os.Symlink("a", filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	tree, err := Build(context.Background(), root, WithSizer(fsutils.ApparentSize))
	require.NoError(t, err)

	link, ok := tree.Lookup([]string{"link"})
	require.True(t, ok)
	assert.Equal(t, KindSymlink, link.Kind())
	assert.False(t, link.IsDir())
	target, ok := link.SymlinkTarget()
	assert.True(t, ok)
	assert.Equal(t, "a", target)

	info, err := os.Lstat(filepath.Join(root, "link"))
	require.NoError(t, err)
	linkSize, ok := link.Size()
	assert.True(t, ok)
	assert.Equal(t, fsutils.ApparentSize(info), linkSize)
	assert.Equal(t, 4096+linkSize, tree.TotalSize(), "link target must not be counted twice")

	_, ok = link.List()
	assert.False(t, ok)
}

func TestBuild_UnreadableEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := files.NewMockStore(ctrl)
	store.EXPECT().Stat("/r").Return(dirInfo("r"), nil)
	store.EXPECT().ReadDir(gomock.Any(), "/r").Return([]os.DirEntry{
		files.NewDirEntry("locked", os.ModeDir),
		files.NewDirEntry("f", 0),
		files.NewDirEntry("l", os.ModeSymlink),
		files.NewDirEntry("gone", 0),
		files.NewDirEntry("dangling", os.ModeSymlink),
	}, nil)
	store.EXPECT().Lstat("/r/locked").Return(dirInfo("locked"), nil)
	store.EXPECT().ReadDir(gomock.Any(), "/r/locked").Return(nil, os.ErrPermission)
	store.EXPECT().Lstat("/r/f").Return(fileInfo("f", 100), nil)
	store.EXPECT().Lstat("/r/l").Return(linkInfo("l", 7), nil)
	store.EXPECT().Readlink("/r/l").Return("target1", nil)
	store.EXPECT().Lstat("/r/gone").Return(nil, os.ErrNotExist)
	store.EXPECT().Lstat("/r/dangling").Return(linkInfo("dangling", 3), nil)
	store.EXPECT().Readlink("/r/dangling").Return("", errors.New("readlink failed"))

	tree, err := Build(context.Background(), "/r", WithStore(store), WithSizer(fsutils.ApparentSize))
	require.NoError(t, err)

	assert.Equal(t, uint64(107), tree.TotalSize())
	assert.Equal(t, 5, tree.Root().NumChildren())
	assertTotals(t, tree.Root())

	listing, ok := tree.List(nil)
	require.True(t, ok)
	assert.Equal(t, []Listing{
		{Name: "dangling"},
		{Name: "f", Size: 100},
		{Name: "gone"},
		{Name: "l", Size: 7, SymlinkTarget: "target1"},
		{Name: "locked"},
	}, listing)

	for _, name := range []string{"locked", "gone", "dangling"} {
		entry, ok := tree.Lookup([]string{name})
		require.True(t, ok)
		assert.True(t, entry.IsUnreadable(), name)
		_, hasSize := entry.Size()
		assert.False(t, hasSize, name)
	}
}

func TestBuild_Progress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x"), 10)
	writeFile(t, filepath.Join(root, "d", "y"), 20)

	type report struct {
		entries int64
		bytes   uint64
	}
	var reports []report
	_, err := Build(context.Background(), root,
		WithSizer(fsutils.ApparentSize),
		WithProgress(func(entries int64, bytes uint64) {
			reports = append(reports, report{entries, bytes})
		}),
	)
	require.NoError(t, err)
	require.NotEmpty(t, reports)
	assert.Equal(t, report{entries: 3, bytes: 30}, reports[len(reports)-1])
}

func TestTree_Lookup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b", "c"), 1)

	tree, err := Build(context.Background(), root)
	require.NoError(t, err)

	entry, ok := tree.Lookup(nil)
	assert.True(t, ok)
	assert.Same(t, tree.Root(), entry)

	entry, ok = tree.Lookup([]string{"a", "b", "c"})
	assert.True(t, ok)
	assert.Equal(t, KindFile, entry.Kind())
	assert.Equal(t, "c", entry.Name())
	assert.Equal(t, filepath.Join(root, "a", "b", "c"), entry.Path())

	_, ok = tree.Lookup([]string{"a", "zzz"})
	assert.False(t, ok)

	_, ok = tree.Lookup([]string{"a", "b", "c", "d"})
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "dir", KindDir.String())
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "symlink", KindSymlink.String())
	assert.Equal(t, "unreadable", KindUnreadable.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
