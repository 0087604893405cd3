package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/jask/guidegen/internal/backend"
	"github.com/jask/guidegen/internal/config"
	"github.com/jask/guidegen/internal/download"
	"github.com/jask/guidegen/internal/guides"
	"github.com/jask/guidegen/internal/progress"
	"github.com/jask/guidegen/internal/workflow"
)

var ctx = context.Background()

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := routes[r.Method+" "+r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"no route"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func captureStderr(t *testing.T) *bytes.Buffer {
	t.Helper()
	old, oldNoColor := stderr, color.NoColor
	buf := &bytes.Buffer{}
	stderr, color.NoColor = buf, true
	t.Cleanup(func() { stderr, color.NoColor = old, oldNoColor })
	return buf
}

func newRunner(t *testing.T, srv *httptest.Server, dir string) *workflow.Runner {
	t.Helper()
	client := backend.New(config.ServerConfig{
		BaseURL:       srv.URL,
		UploadPath:    "/upload/",
		ExportPath:    "/export/",
		ExportTXTPath: "/export-txt/",
	}, srv.Client())
	return &workflow.Runner{
		Backend:  client,
		Session:  guides.NewSession(),
		Saver:    download.Saver{Dir: dir},
		Progress: progress.New(time.Hour, 10, 90),
		Status:   func(_ int, text string) { printStep("%s", text) },
		Notify:   notice,
	}
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("url\nhttps://shop/k\n"), 0o600))
	return path
}

func TestGenerateListsCardsAndSavesExports(t *testing.T) {
	errOut := captureStderr(t)
	srv := newTestServer(t, map[string]string{
		"POST /upload/":    `{"buying_guides":[{"url":"https://shop/k","guide":{"productTitle":"Kettle"}},{"sku":"B2"}]}`,
		"GET /export/":     `[{"sku":"B2"}]`,
		"GET /export-txt/": "Kettle guide",
	})
	dir := t.TempDir()
	var out bytes.Buffer

	err := runGenerate(ctx, newRunner(t, srv, dir), writeCSV(t), generateOptions{json: true, txt: true}, &out)
	require.NoError(t, err)

	require.Equal(t, "Guide 1  Kettle · https://shop/k\nGuide 2\n", out.String())
	require.Contains(t, errOut.String(), "→ Generating guide... 0%")
	require.Contains(t, errOut.String(), "→ ✅ Guide Generated!")
	require.Contains(t, errOut.String(), "✓ Guides generated successfully!")
	require.Contains(t, errOut.String(), "✓ JSON downloaded successfully!")
	require.Contains(t, errOut.String(), "✓ TXT downloaded successfully!")

	data, err := os.ReadFile(filepath.Join(dir, "buying_guides.json"))
	require.NoError(t, err)
	require.Equal(t, `[{"sku":"B2"}]`, string(data))
	data, err = os.ReadFile(filepath.Join(dir, "buying_guides.txt"))
	require.NoError(t, err)
	require.Equal(t, "Kettle guide", string(data))
}

func TestGenerateSearchAndShowJSON(t *testing.T) {
	captureStderr(t)
	srv := newTestServer(t, map[string]string{
		"POST /upload/": `{"buying_guides":[{"sku":"A1"},{"sku":"B2"}]}`,
	})
	var out bytes.Buffer

	err := runGenerate(ctx, newRunner(t, srv, t.TempDir()), writeCSV(t), generateOptions{search: "b2", showJSON: true}, &out)
	require.NoError(t, err)
	require.Equal(t, "Guide 2\n{\n  \"sku\": \"B2\"\n}\n", out.String())

	out.Reset()
	err = runGenerate(ctx, newRunner(t, srv, t.TempDir()), writeCSV(t), generateOptions{search: "zz"}, &out)
	require.NoError(t, err)
	require.Equal(t, "No guides match the search.\n", out.String())
}

func TestGenerateUploadFailureIsReported(t *testing.T) {
	errOut := captureStderr(t)
	srv := newTestServer(t, map[string]string{})
	var out bytes.Buffer

	err := runGenerate(ctx, newRunner(t, srv, t.TempDir()), writeCSV(t), generateOptions{json: true}, &out)
	require.Error(t, err)
	var shown reportedError
	require.True(t, errors.As(err, &shown))
	var upErr *backend.UploadError
	require.True(t, errors.As(err, &upErr))
	require.Empty(t, out.String())
	require.Contains(t, errOut.String(), "→ ❌ Error generating guide")
	require.Contains(t, errOut.String(), "✗ Error: no route")
}

func TestGenerateExportFailureWritesNothing(t *testing.T) {
	errOut := captureStderr(t)
	srv := newTestServer(t, map[string]string{
		"POST /upload/": `{"buying_guides":[]}`,
	})
	dir := t.TempDir()
	var out bytes.Buffer

	err := runGenerate(ctx, newRunner(t, srv, dir), writeCSV(t), generateOptions{txt: true}, &out)
	require.Error(t, err)
	require.Equal(t, "The server returned no guides.\n", out.String())
	require.Contains(t, errOut.String(), "✗ Error: Export TXT failed")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestGenerateWithoutFile(t *testing.T) {
	errOut := captureStderr(t)
	srv := newTestServer(t, map[string]string{})

	err := runGenerate(ctx, newRunner(t, srv, t.TempDir()), "  ", generateOptions{}, &bytes.Buffer{})
	require.ErrorIs(t, err, backend.ErrNoFile)
	require.Contains(t, errOut.String(), "✗ Please select a CSV file!")
}

func TestRootCommandWiring(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("server"))

	sub, _, err := rootCmd.Find([]string{"generate"})
	require.NoError(t, err)
	require.Equal(t, generateCmd, sub)
	sub, _, err = rootCmd.Find([]string{"config", "init"})
	require.NoError(t, err)
	require.Equal(t, configInitCmd, sub)
	require.NotNil(t, configInitCmd.Flags().Lookup("force"))
	for _, name := range []string{"json", "txt", "out", "search", "show-json"} {
		require.NotNil(t, generateCmd.Flags().Lookup(name), name)
	}
}

func TestGenerateRequiresArgument(t *testing.T) {
	captureStderr(t)
	rootCmd.SetArgs([]string{"generate"})
	defer rootCmd.SetArgs(nil)
	require.Error(t, rootCmd.Execute())
}

func TestLoadEnvServerOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfigPath, "")
	oldServer, oldConfig := serverURL, configPath
	t.Cleanup(func() { serverURL, configPath = oldServer, oldConfig })

	configPath = ""
	serverURL = "http://guides.internal:9000/"
	e, err := loadEnv()
	require.NoError(t, err)
	require.Equal(t, "http://guides.internal:9000", e.client.BaseURL())

	serverURL = "not a url"
	_, err = loadEnv()
	require.Error(t, err)
}

func TestConfigInitWritesLoadableFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfigPath, "")
	path := filepath.Join(t.TempDir(), "guidegen.toml")

	written, err := initConfig(path, "http://10.0.0.2:8002", false)
	require.NoError(t, err)
	require.Equal(t, path, written)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.2:8002", cfg.Server.BaseURL)
	require.Equal(t, 90, cfg.Progress.Cap)

	_, err = initConfig(path, "", false)
	require.ErrorContains(t, err, "already exists")

	_, err = initConfig(path, "", true)
	require.NoError(t, err)
	cfg, err = config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8002", cfg.Server.BaseURL)
}

func TestConfigInitDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfigPath, "")

	written, err := initConfig("", "", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config", "guidegen", "config.toml"), written)
	_, err = os.Stat(written)
	require.NoError(t, err)

	_, err = initConfig("", "not a url", true)
	require.Error(t, err)
}
