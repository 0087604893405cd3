package picker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscoverListsOnlyCSV(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"products.csv", "B.CSV", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	got, err := Discover(dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "B.CSV"), filepath.Join(dir, "products.csv")}, got)
}

func TestPickerRanksClosestFirst(t *testing.T) {
	p := New([]string{"data/archive-products.csv", "data/products.csv", "data/prices.csv"}, "data/products")
	items := p.Items()
	require.Equal(t, "data/products.csv", items[0])
	require.NotContains(t, items, "data/prices.csv")
}

func TestPickerLevenshteinBreaksTies(t *testing.T) {
	p := New([]string{"zz/abcdef.csv", "zz/abc.csv"}, "")
	require.Equal(t, []string{"zz/abc.csv", "zz/abcdef.csv"}, p.Items(), "empty query ranks shorter names first")
}

func TestPickerKeys(t *testing.T) {
	p := New([]string{"a.csv", "b.csv", "c.csv"}, "")
	require.Equal(t, ActionNone, p.HandleKey("up").Action)
	require.Equal(t, ActionMoved, p.HandleKey("down").Action)
	res := p.HandleKey("enter")
	require.Equal(t, ActionSelected, res.Action)
	require.Equal(t, "b.csv", res.Path)

	p.HandleKey("c")
	require.Equal(t, "c", p.Query())
	require.Equal(t, "c.csv", p.Items()[0])
	require.Equal(t, 0, p.Cursor())

	p.HandleKey("backspace")
	require.Equal(t, "", p.Query())
	require.Len(t, p.Items(), 3)

	require.Equal(t, ActionCancelled, p.HandleKey("esc").Action)
}

func TestPickerEmptyEnter(t *testing.T) {
	p := New(nil, "x")
	require.Equal(t, ActionNone, p.HandleKey("enter").Action)
}

func TestSearchDir(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, ".", SearchDir(""))
	require.Equal(t, dir, SearchDir(dir))
	require.Equal(t, dir, SearchDir(filepath.Join(dir, "partial")))
}

func TestParseDropped(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"/home/me/products.csv", []string{"/home/me/products.csv"}},
		{`/home/me/my\ products.csv`, []string{"/home/me/my products.csv"}},
		{`'/home/me/my products.csv' /tmp/b.csv`, []string{"/home/me/my products.csv", "/tmp/b.csv"}},
		{"file:///tmp/with%20space.csv", []string{"/tmp/with space.csv"}},
		{`"/tmp/unbalanced.csv`, []string{`"/tmp/unbalanced.csv`}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ParseDropped(tc.in), tc.in)
	}

	first, ok := FirstDropped("/tmp/a.csv /tmp/b.csv")
	require.True(t, ok)
	require.Equal(t, "/tmp/a.csv", first)
	_, ok = FirstDropped("   ")
	require.False(t, ok)
}
