package msu1_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sneslab/cx4/msu1"
)

type fakeFS struct {
	files map[string]string
}

func (f *fakeFS) ReadFile(path string) (string, bool) {
	v, ok := f.files[path]
	return v, ok
}

func (f *fakeFS) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func TestResolvePathsPrefersMsuExtension(t *testing.T) {
	fs := &fakeFS{files: map[string]string{
		filepath.Join("/roms", "game.msu"): "",
	}}

	paths, ok := msu1.ResolvePaths(fs, "/roms", "game")
	require.True(t, ok)
	require.Equal(t, filepath.Join("/roms", "game.msu"), paths.DataFilePath)
	require.Equal(t, filepath.Join("/roms", "game-3.pcm"), paths.TrackPath(3))
}

func TestResolvePathsFallsBackToMsu1Rom(t *testing.T) {
	fs := &fakeFS{files: map[string]string{
		filepath.Join("/roms", "msu1.rom"): "",
	}}

	paths, ok := msu1.ResolvePaths(fs, "/roms", "game")
	require.True(t, ok)
	require.Equal(t, filepath.Join("/roms", "msu1.rom"), paths.DataFilePath)
	require.Equal(t, filepath.Join("/roms", "track-3.pcm"), paths.TrackPath(3))
}

func TestResolvePathsUsesMsu1DirRedirect(t *testing.T) {
	fs := &fakeFS{files: map[string]string{
		filepath.Join("/roms", "msu1.dir"):       "/elsewhere\n",
		filepath.Join("/elsewhere", "game.msu"): "",
	}}

	paths, ok := msu1.ResolvePaths(fs, "/roms", "game")
	require.True(t, ok)
	require.Equal(t, filepath.Join("/elsewhere", "game.msu"), paths.DataFilePath)
}

func TestResolvePathsReportsNotFound(t *testing.T) {
	fs := &fakeFS{files: map[string]string{}}
	_, ok := msu1.ResolvePaths(fs, "/roms", "game")
	require.False(t, ok)
}
