package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/checkpack/checkpack/internal/testutil"
)

func TestFile_Exists(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "out/app.txt", "hello")

	ok, err := NewFile(path).Exists()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFile_Exists_Missing(t *testing.T) {
	dir := t.TempDir()

	ok, err := NewFile(filepath.Join(dir, "never-built.txt")).Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_Exists_DirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()

	ok, err := NewFile(dir).Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_Empty(t *testing.T) {
	dir := t.TempDir()
	empty := testutil.WriteFile(t, dir, "empty.txt", "")
	full := testutil.WriteFile(t, dir, "full.txt", "content")

	ok, err := NewFile(empty).Empty()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NewFile(full).Empty()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_Empty_Missing(t *testing.T) {
	// Non-existence is never emptiness.
	ok, err := NewFile(filepath.Join(t.TempDir(), "gone")).Empty()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFile_Content(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.txt", "something")

	content, err := NewFile(path).Content()
	require.NoError(t, err)
	assert.Equal(t, []byte("something"), content)
}

func TestFile_Content_Missing(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "gone")).Content()
	require.Error(t, err)
	assert.True(t, IsAccessError(err))
}

func TestFile_Describe(t *testing.T) {
	assert.Equal(t, "file build/out/app.txt", NewFile("build/out/app.txt").Describe())
}

func TestDir_Exists(t *testing.T) {
	dir := t.TempDir()

	ok, err := NewDir(dir).Exists()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NewDir(filepath.Join(dir, "missing")).Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDir_Exists_FileIsNotADir(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "f.txt", "x")

	ok, err := NewDir(path).Exists()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDir_Empty_RecursesThroughSubdirectories(t *testing.T) {
	dir := t.TempDir()
	// An empty subdirectory does not count as content.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0o755))

	ok, err := NewDir(dir).Empty()
	require.NoError(t, err)
	assert.True(t, ok)

	testutil.WriteFile(t, dir, "sub/deeper/file.txt", "x")

	ok, err = NewDir(dir).Empty()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDir_Empty_Missing(t *testing.T) {
	ok, err := NewDir(filepath.Join(t.TempDir(), "missing")).Empty()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDir_DescendantPaths(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"top.txt":       "a",
		"with/test":     "b",
		"with/nested/c": "c",
	})

	paths, err := NewDir(dir).DescendantPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"top.txt", "with/nested/c", "with/test"}, paths)
}
