package service

import (
	"errors"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	osfs "github.com/omegaatt36/ultraimage/internal/adapter/fs"
	"github.com/omegaatt36/ultraimage/internal/adapter/match"
	"github.com/omegaatt36/ultraimage/internal/domain"
	"github.com/omegaatt36/ultraimage/internal/mock"
	"github.com/omegaatt36/ultraimage/internal/testutil"
)

func newDiskPool() *PoolService {
	return NewPoolService(&osfs.OSFileSystem{}, &match.Engine{})
}

func TestPoolService_Select_WithMocks(t *testing.T) {
	dirInfo := &testutil.MockFileInfo{FileName: "test", Directory: true}

	t.Run("lists, filters by extension and sorts naturally", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockFS := mock.NewMockFileSystem(ctrl)

		mockFS.EXPECT().Stat("/test").Return(dirInfo, nil)
		mockFS.EXPECT().ReadDir("/test").Return([]os.DirEntry{
			testutil.NewMockDirEntry("img_10.png", 100),
			testutil.NewMockDirEntry("img_2.PNG", 200),
			testutil.NewMockDirEntry("notes.txt", 300),
			testutil.NewMockDirDirEntry("sub.png"),
		}, nil)

		pool := NewPoolService(mockFS, &match.Engine{})
		files, err := pool.Candidates("/test", false, domain.Filter{})
		require.NoError(t, err)
		require.Len(t, files, 2, "directories and non-images excluded")
		assert.Equal(t, "img_2.PNG", files[0].Name)
		assert.Equal(t, ".png", files[0].Extension)
		assert.Equal(t, "img_10.png", files[1].Name)
	})

	t.Run("filters ask the matcher about base names", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockFS := mock.NewMockFileSystem(ctrl)
		mockNM := mock.NewMockNameMatcher(ctrl)

		mockFS.EXPECT().Stat("/test").Return(dirInfo, nil)
		mockFS.EXPECT().ReadDir("/test").Return([]os.DirEntry{
			testutil.NewMockDirEntry("cat_01.png", 1),
			testutil.NewMockDirEntry("cat_02.png", 1),
		}, nil)
		mockNM.EXPECT().Contains("cat_01.png", "cat").Return(true)
		mockNM.EXPECT().Contains("cat_02.png", "cat").Return(true)
		mockNM.EXPECT().Contains("cat_01.png", "01").Return(true)
		mockNM.EXPECT().Contains("cat_02.png", "01").Return(false)

		pool := NewPoolService(mockFS, mockNM)
		sel, err := pool.Select(domain.SelectRequest{
			Root:   "/test",
			Filter: domain.Filter{Include: "cat", Exclude: "01"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, sel.Total)
		assert.Equal(t, "cat_02.png", sel.Item.Name)
	})

	t.Run("populates size and mod time", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockFS := mock.NewMockFileSystem(ctrl)

		fixed := time.Date(2026, 2, 17, 10, 30, 0, 0, time.UTC)
		mockFS.EXPECT().Stat("/test").Return(dirInfo, nil)
		mockFS.EXPECT().ReadDir("/test").Return([]os.DirEntry{
			&testutil.MockDirEntry{
				EntryName: "a.jpg",
				FileInfo:  &testutil.MockFileInfo{FileName: "a.jpg", FileSize: 500, FileModTime: fixed},
			},
		}, nil)

		sel, err := NewPoolService(mockFS, &match.Engine{}).Select(domain.SelectRequest{Root: "/test"})
		require.NoError(t, err)
		assert.Equal(t, uint64(500), sel.Item.Size)
		assert.Equal(t, fixed, sel.Item.ModTime)
		assert.Equal(t, filepath.Join("/test", "a.jpg"), sel.Item.Path)
	})

	t.Run("stat failure is an invalid path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockFS := mock.NewMockFileSystem(ctrl)

		mockFS.EXPECT().Stat("/gone").Return(nil, fs.ErrNotExist)

		_, err := NewPoolService(mockFS, &match.Engine{}).Select(domain.SelectRequest{Root: "/gone"})
		assert.True(t, errors.Is(err, domain.ErrInvalidPath))
	})

	t.Run("unreadable subdirectories are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockFS := mock.NewMockFileSystem(ctrl)

		mockFS.EXPECT().Stat("/root").Return(dirInfo, nil)
		mockFS.EXPECT().WalkDir("/root", gomock.Any()).DoAndReturn(func(root string, fn fs.WalkDirFunc) error {
			if err := fn(root, testutil.NewMockDirDirEntry("root"), nil); err != nil {
				return err
			}
			locked := filepath.Join(root, "locked")
			if err := fn(locked, testutil.NewMockDirDirEntry("locked"), fs.ErrPermission); err != filepath.SkipDir {
				t.Errorf("locked dir: got %v, want SkipDir", err)
			}
			return fn(filepath.Join(root, "ok", "a.png"), testutil.NewMockDirEntry("a.png", 1), nil)
		})

		sel, err := NewPoolService(mockFS, &match.Engine{}).Select(domain.SelectRequest{Root: "/root", Recursive: true})
		require.NoError(t, err)
		assert.Equal(t, 1, sel.Total)
		assert.Equal(t, "ok/a.png", sel.Item.RelPath)
	})
}

func TestPoolService_Select_OnDisk(t *testing.T) {
	white := testutil.Solid(64, 64, color.White)

	t.Run("scenario: mod picks from sorted pool", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "b.jpg", testutil.JPEG(t, white))
		testutil.WriteFile(t, dir, "b.txt", []byte("text"))
		testutil.WriteFile(t, dir, "a.png", testutil.PNG(t, white))

		sel, err := newDiskPool().Select(domain.SelectRequest{Root: dir, Index: 2})
		require.NoError(t, err)
		require.True(t, sel.Found)
		assert.Equal(t, 2, sel.Total)
		assert.Equal(t, 0, sel.Index)
		assert.Equal(t, "a.png", sel.Item.Name)
		assert.Equal(t, filepath.Join(dir, "a.png"), sel.Item.Path)
	})

	t.Run("index is reduced modulo the pool size", func(t *testing.T) {
		dir := t.TempDir()
		for _, n := range []string{"f_1.png", "f_2.png", "f_3.png"} {
			testutil.WriteFile(t, dir, n, nil)
		}
		pool := newDiskPool()
		for i := 0; i < 10; i++ {
			sel, err := pool.Select(domain.SelectRequest{Root: dir, Index: i})
			require.NoError(t, err)
			assert.Equal(t, i%3, sel.Index)

			again, err := pool.Select(domain.SelectRequest{Root: dir, Index: i})
			require.NoError(t, err)
			assert.Equal(t, sel, again, "stable across calls")
		}
	})

	t.Run("negative index wraps", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "a.png", nil)
		testutil.WriteFile(t, dir, "b.png", nil)

		sel, err := newDiskPool().Select(domain.SelectRequest{Root: dir, Index: -1})
		require.NoError(t, err)
		assert.Equal(t, "b.png", sel.Item.Name)
	})

	t.Run("filters are a conjunction", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "cat_01.png", nil)
		testutil.WriteFile(t, dir, "cat_02.png", nil)
		testutil.WriteFile(t, dir, "dog_01.png", nil)

		pool := newDiskPool()

		files, err := pool.Candidates(dir, false, domain.Filter{Include: "cat"})
		require.NoError(t, err)
		assert.Len(t, files, 2)

		files, err = pool.Candidates(dir, false, domain.Filter{Exclude: "01"})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "cat_02.png", files[0].Name)

		files, err = pool.Candidates(dir, false, domain.Filter{Include: "cat", Exclude: "01"})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "cat_02.png", files[0].Name)
	})

	t.Run("empty directory is the empty sentinel", func(t *testing.T) {
		sel, err := newDiskPool().Select(domain.SelectRequest{Root: t.TempDir(), Index: 5})
		require.NoError(t, err)
		assert.False(t, sel.Found)
		assert.Equal(t, 0, sel.Total)
		assert.Empty(t, sel.Item.Path)
	})

	t.Run("everything filtered out is the empty sentinel", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "a.png", nil)

		sel, err := newDiskPool().Select(domain.SelectRequest{Root: dir, Filter: domain.Filter{Include: "zzz"}})
		require.NoError(t, err)
		assert.False(t, sel.Found)
	})

	t.Run("recursive walks the subtree", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "a.png", nil)
		testutil.WriteFile(t, dir, "sub/b.png", nil)
		testutil.WriteFile(t, dir, "sub/deeper/c.gif", nil)

		flat, err := newDiskPool().Candidates(dir, false, domain.Filter{})
		require.NoError(t, err)
		assert.Len(t, flat, 1)

		deep, err := newDiskPool().Candidates(dir, true, domain.Filter{})
		require.NoError(t, err)
		require.Len(t, deep, 3)
		assert.Equal(t, "a.png", deep[0].RelPath)
		assert.Equal(t, "sub/b.png", deep[1].RelPath)
		assert.Equal(t, "sub/deeper/c.gif", deep[2].RelPath)
		assert.Equal(t, filepath.Join(dir, "sub", "deeper", "c.gif"), deep[2].Path)
	})

	t.Run("filters see base names, not directories", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "cats/a.png", nil)

		files, err := newDiskPool().Candidates(dir, true, domain.Filter{Include: "cat"})
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := newDiskPool().Select(domain.SelectRequest{Root: filepath.Join(t.TempDir(), "missing")})
		assert.True(t, errors.Is(err, domain.ErrInvalidPath))
	})

	t.Run("root is a file", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "a.png", nil)
		_, err := newDiskPool().Select(domain.SelectRequest{Root: path})
		assert.True(t, errors.Is(err, domain.ErrInvalidPath))
	})
}
