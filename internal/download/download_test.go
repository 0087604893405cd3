package download

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	path, err := Saver{Dir: dir}.Save("buying_guides.json", []byte(`[]`))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "buying_guides.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `[]`, string(data))
}

func TestSaveNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := Saver{Dir: dir}
	first, err := s.Save("buying_guides.txt", []byte("one"))
	require.NoError(t, err)
	second, err := s.Save("buying_guides.txt", []byte("two"))
	require.NoError(t, err)
	third, err := s.Save("buying_guides.txt", []byte("three"))
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "buying_guides.txt"), first)
	require.Equal(t, filepath.Join(dir, "buying_guides (1).txt"), second)
	require.Equal(t, filepath.Join(dir, "buying_guides (2).txt"), third)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, "one", string(data))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Saver{Dir: dir}.Save("buying_guides.json", []byte("{}"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "buying_guides.json", entries[0].Name())
}

func TestSaveStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	path, err := Saver{Dir: dir}.Save("../../escape.json", []byte("{}"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "escape.json"), path)
}
