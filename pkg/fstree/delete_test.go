package fstree

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/filetug/dutug/pkg/files"
	"github.com/filetug/dutug/pkg/files/osfile"
	"github.com/filetug/dutug/pkg/fsutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTree_Delete(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "f"), 1000)
	writeFile(t, filepath.Join(root, "b"), 500)

	tree, err := Build(context.Background(), root, WithSizer(fsutils.ApparentSize))
	require.NoError(t, err)
	require.Equal(t, uint64(1500), tree.TotalSize())

	total, err := tree.Delete(context.Background(), []string{"a", "f"})
	require.NoError(t, err)
	assert.Equal(t, uint64(500), total)
	assert.Equal(t, uint64(500), tree.TotalSize())
	assertTotals(t, tree.Root())

	listing, ok := tree.List(nil)
	require.True(t, ok)
	assert.Equal(t, []Listing{
		{Name: "a", Size: 0, IsDir: true},
		{Name: "b", Size: 500},
	}, listing)

	_, err = os.Lstat(filepath.Join(root, "a", "f"))
	assert.True(t, os.IsNotExist(err))

	t.Run("directory_recursively", func(t *testing.T) {
		writeFile(t, filepath.Join(root, "c", "d", "e"), 10)
		tree, err := Build(context.Background(), root, WithSizer(fsutils.ApparentSize))
		require.NoError(t, err)
		require.Equal(t, uint64(510), tree.TotalSize())

		total, err := tree.Delete(context.Background(), []string{"c"})
		require.NoError(t, err)
		assert.Equal(t, uint64(500), total)
		_, ok := tree.Lookup([]string{"c"})
		assert.False(t, ok)
		_, err = os.Lstat(filepath.Join(root, "c"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestTree_Delete_DryRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f"), 100)

	store := osfile.NewStore(osfile.DryRun(true))
	tree, err := Build(context.Background(), root, WithStore(store), WithSizer(fsutils.ApparentSize))
	require.NoError(t, err)

	total, err := tree.Delete(context.Background(), []string{"f"})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), total)

	_, err = os.Lstat(filepath.Join(root, "f"))
	assert.NoError(t, err, "dry run must leave the disk alone")
}

func newMockTree(t *testing.T) (*Tree, *files.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := files.NewMockStore(ctrl)
	store.EXPECT().Stat("/r").Return(dirInfo("r"), nil)
	store.EXPECT().ReadDir(gomock.Any(), "/r").Return([]os.DirEntry{
		files.NewDirEntry("d", os.ModeDir),
		files.NewDirEntry("f", 0),
		files.NewDirEntry("gone", 0),
	}, nil)
	store.EXPECT().Lstat("/r/d").Return(dirInfo("d"), nil)
	store.EXPECT().ReadDir(gomock.Any(), "/r/d").Return([]os.DirEntry{
		files.NewDirEntry("x", 0),
	}, nil)
	store.EXPECT().Lstat("/r/d/x").Return(fileInfo("x", 40), nil)
	store.EXPECT().Lstat("/r/f").Return(fileInfo("f", 2), nil)
	store.EXPECT().Lstat("/r/gone").Return(nil, os.ErrNotExist)

	tree, err := Build(context.Background(), "/r", WithStore(store), WithSizer(fsutils.ApparentSize))
	require.NoError(t, err)
	require.Equal(t, uint64(42), tree.TotalSize())
	return tree, store
}

func TestTree_Delete_Failures(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		tree, _ := newMockTree(t)
		_, err := tree.Delete(context.Background(), []string{"nope"})
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = tree.Delete(context.Background(), []string{"d", "nope"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, uint64(42), tree.TotalSize())
	})

	t.Run("unreadable", func(t *testing.T) {
		tree, _ := newMockTree(t)
		_, err := tree.Delete(context.Background(), []string{"gone"})
		assert.ErrorIs(t, err, ErrUnreadable)
		assert.Equal(t, uint64(42), tree.TotalSize())
		assert.Equal(t, 3, tree.Root().NumChildren())
	})

	t.Run("removal_failed", func(t *testing.T) {
		tree, store := newMockTree(t)
		cause := errors.New("busy")
		store.EXPECT().Delete(gomock.Any(), "/r/d/x", false).Return(cause)

		_, err := tree.Delete(context.Background(), []string{"d", "x"})
		assert.ErrorIs(t, err, ErrRemovalFailed)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, uint64(42), tree.TotalSize())
		_, ok := tree.Lookup([]string{"d", "x"})
		assert.True(t, ok)
		assertTotals(t, tree.Root())
	})

	t.Run("nested_success", func(t *testing.T) {
		tree, store := newMockTree(t)
		store.EXPECT().Delete(gomock.Any(), "/r/d/x", false).Return(nil)

		total, err := tree.Delete(context.Background(), []string{"d", "x"})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		d, ok := tree.Lookup([]string{"d"})
		require.True(t, ok)
		size, _ := d.Size()
		assert.Equal(t, uint64(0), size)
		assert.Equal(t, 0, d.NumChildren())
		assertTotals(t, tree.Root())
	})

	t.Run("directory_is_removed_recursively", func(t *testing.T) {
		tree, store := newMockTree(t)
		store.EXPECT().Delete(gomock.Any(), "/r/d", true).Return(nil)

		total, err := tree.Delete(context.Background(), []string{"d"})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
	})

	t.Run("empty_path_panics", func(t *testing.T) {
		tree, _ := newMockTree(t)
		assert.Panics(t, func() {
			_, _ = tree.Delete(context.Background(), nil)
		})
	})

	t.Run("descending_through_file_panics", func(t *testing.T) {
		tree, _ := newMockTree(t)
		assert.Panics(t, func() {
			_, _ = tree.Delete(context.Background(), []string{"f", "x"})
		})
	})
}
