package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/listy/internal/model"
	"github.com/Makepad-fr/listy/internal/sharecodec"
	"github.com/Makepad-fr/listy/internal/ui"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// isolate points every config and data lookup at temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	for _, k := range []string{"LISTY_DATA_DIR", "LISTY_BACKEND", "LISTY_BASE_URL", "LISTY_THEME", "LISTY_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	ui.SetColorForcing(false, true)
	t.Cleanup(func() { ui.SetColorForcing(false, false) })
	return filepath.Join(root, "data", "listy")
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var out, errb bytes.Buffer
	code := Run(append([]string{"--no-clipboard"}, args...), Options{Stdout: &out, Stderr: &errb})
	return result{code: code, stdout: out.String(), stderr: errb.String()}
}

func exportJSON(t *testing.T, args ...string) []model.Item {
	t.Helper()
	r := run(t, append(args, "export", "--format", "json")...)
	require.Equal(t, 0, r.code, r.stderr)
	var items []model.Item
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(r.stdout)), &items))
	return items
}

func TestAddListAndPersist(t *testing.T) {
	dataDir := isolate(t)

	r := run(t, "add", "Buy", "milk")
	require.Equal(t, 0, r.code, r.stderr)
	require.Contains(t, r.stdout, "added")

	r = run(t, "add", "Walk dog")
	require.Equal(t, 0, r.code, r.stderr)

	r = run(t, "ls")
	require.Equal(t, 0, r.code, r.stderr)
	require.Contains(t, r.stdout, "1. ☐ Buy milk")
	require.Contains(t, r.stdout, "2. ☐ Walk dog")

	_, err := os.Stat(filepath.Join(dataDir, "listy.json"))
	require.NoError(t, err)
}

func TestEmptyListShowsEmptyState(t *testing.T) {
	isolate(t)
	r := run(t, "ls")
	require.Equal(t, 0, r.code)
	require.Contains(t, r.stdout, "No items yet")
}

func TestBlankAddIsIgnored(t *testing.T) {
	isolate(t)
	r := run(t, "add", "   ")
	require.Equal(t, 0, r.code)
	require.Empty(t, r.stdout)
	require.Empty(t, r.stderr)
	require.Empty(t, exportJSON(t))
}

func TestSaveFailureFailsCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	// a directory where the data file belongs makes every write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "listy.json"), 0o755))

	r := run(t, "--data-dir", dir, "add", "lost")
	require.Equal(t, 1, r.code)
	require.Contains(t, r.stderr, "Could not save your list")
	require.NotContains(t, r.stdout, "added")
}

func TestTUISessionWithoutDataDirLogsNowhere(t *testing.T) {
	isolate(t)
	var errb bytes.Buffer
	a := &App{Backend: "memory", LogLevel: "debug", stdout: &bytes.Buffer{}, stderr: &errb}
	s, err := a.openSession(context.Background(), sessionOptions{logToFile: true})
	require.NoError(t, err)
	defer s.Close()
	s.logger.Error("should not reach stderr")
	require.Empty(t, errb.String())
}

func TestToggleEditRemove(t *testing.T) {
	isolate(t)
	require.Equal(t, 0, run(t, "add", "one").code)
	require.Equal(t, 0, run(t, "add", "two").code)
	require.Equal(t, 0, run(t, "add", "three").code)

	require.Equal(t, 0, run(t, "done", "2").code)
	require.Equal(t, 0, run(t, "edit", "1", "uno").code)
	require.Equal(t, 0, run(t, "rm", "3").code)

	items := exportJSON(t)
	require.Len(t, items, 2)
	require.Equal(t, "uno", items[0].Text)
	require.False(t, items[0].Completed)
	require.Equal(t, "two", items[1].Text)
	require.True(t, items[1].Completed)

	// toggling again brings it back
	require.Equal(t, 0, run(t, "toggle", "2").code)
	require.False(t, exportJSON(t)[1].Completed)
}

func TestEditToBlankDeletes(t *testing.T) {
	isolate(t)
	require.Equal(t, 0, run(t, "add", "keep").code)
	require.Equal(t, 0, run(t, "add", "drop").code)

	r := run(t, "edit", "2", "  ")
	require.Equal(t, 0, r.code, r.stderr)
	require.Contains(t, r.stdout, "removed")

	items := exportJSON(t)
	require.Len(t, items, 1)
	require.Equal(t, "keep", items[0].Text)
}

func TestIndexErrors(t *testing.T) {
	isolate(t)
	require.Equal(t, 0, run(t, "add", "only").code)

	r := run(t, "done", "5")
	require.Equal(t, 2, r.code)
	require.Contains(t, r.stderr, "index out of range: have 1, got 5")

	r = run(t, "rm", "zero")
	require.Equal(t, 2, r.code)
	require.Contains(t, r.stderr, "not a number")

	r = run(t, "rm")
	require.Equal(t, 2, r.code)
}

func TestShareEmptyListFails(t *testing.T) {
	isolate(t)
	r := run(t, "share")
	require.Equal(t, 1, r.code)
	require.Contains(t, r.stderr, "Cannot share an empty list")
}

func TestShareAndOpenRoundTrip(t *testing.T) {
	isolate(t)
	require.Equal(t, 0, run(t, "add", "Buy milk").code)
	require.Equal(t, 0, run(t, "add", "Fix bike").code)
	require.Equal(t, 0, run(t, "done", "2").code)

	r := run(t, "--base-url", "https://example.com/app", "share")
	require.Equal(t, 0, r.code, r.stderr)
	require.Contains(t, r.stdout, "Share link displayed below")
	lines := strings.Split(strings.TrimSpace(r.stdout), "\n")
	link := lines[len(lines)-1]
	require.True(t, strings.HasPrefix(link, "https://example.com/app?"+sharecodec.QueryKey+"="), link)

	// a second profile opens the link
	other := t.TempDir()
	r = run(t, "--data-dir", other, "open", link)
	require.Equal(t, 0, r.code, r.stderr)
	require.Contains(t, r.stdout, "Shared list loaded!")
	require.Contains(t, r.stdout, "Buy milk")

	items := exportJSON(t, "--data-dir", other)
	require.Len(t, items, 2)
	require.Equal(t, "Buy milk", items[0].Text)
	require.False(t, items[0].Completed)
	require.Equal(t, "Fix bike", items[1].Text)
	require.True(t, items[1].Completed)
}

func TestOpenCorruptTokenKeepsList(t *testing.T) {
	isolate(t)
	require.Equal(t, 0, run(t, "add", "safe").code)

	r := run(t, "open", "%%%not-base64%%%")
	require.Equal(t, 1, r.code)
	require.Contains(t, r.stderr, "Failed to load shared list")

	items := exportJSON(t)
	require.Len(t, items, 1)
	require.Equal(t, "safe", items[0].Text)
}

func TestExportFormats(t *testing.T) {
	isolate(t)
	require.Equal(t, 0, run(t, "add", "<b>bold</b>").code)

	r := run(t, "export")
	require.Equal(t, 0, r.code, r.stderr)
	require.Contains(t, r.stdout, "&lt;b&gt;bold&lt;/b&gt;")
	require.NotContains(t, r.stdout, "<b>bold</b>")

	r = run(t, "export", "--format", "text")
	require.Equal(t, 0, r.code, r.stderr)
	require.Contains(t, r.stdout, "<b>bold</b>")

	r = run(t, "export", "--format", "yaml")
	require.Equal(t, 2, r.code)
	require.Contains(t, r.stderr, "unknown format")
}

func TestSQLiteBackend(t *testing.T) {
	dataDir := isolate(t)
	require.Equal(t, 0, run(t, "--backend", "sqlite", "add", "stored").code)

	items := exportJSON(t, "--backend", "sqlite")
	require.Len(t, items, 1)
	require.Equal(t, "stored", items[0].Text)

	_, err := os.Stat(filepath.Join(dataDir, "listy.sqlite"))
	require.NoError(t, err)
	// the json backend has its own file
	require.Empty(t, exportJSON(t))
}

func TestUsageErrors(t *testing.T) {
	isolate(t)

	r := run(t, "bogus")
	require.Equal(t, 2, r.code)
	require.Contains(t, r.stderr, "unknown command")

	r = run(t, "--backend", "postgres", "ls")
	require.Equal(t, 2, r.code)
	require.Contains(t, r.stderr, "unknown backend")

	r = run(t, "ls", "--nope")
	require.Equal(t, 2, r.code)
}

func TestEnvSelectsBackend(t *testing.T) {
	isolate(t)
	t.Setenv("LISTY_BACKEND", "memory")
	require.Equal(t, 0, run(t, "add", "gone").code)
	// memory does not outlive the process
	require.Empty(t, exportJSON(t))
}
