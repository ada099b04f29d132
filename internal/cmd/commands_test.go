package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/novel-matrix/internal/config"
	"github.com/gravitrone/novel-matrix/internal/host"
	"github.com/gravitrone/novel-matrix/internal/matrix"
)

const projectYAML = `title: Harbor Lights
chapters:
  - id: ch1
    title: One
    type: 0
    scene_ids: [s1, s2]
  - id: arc1
    title: Main arc
    type: 2
    arc_definition: Main
  - id: arc2
    title: Love arc
    type: 2
    arc_definition: Love
scenes:
  s1:
    id: s1
    title: Opening
    arcs: Main
    characters: [c1]
  s2:
    id: s2
    title: Storm
characters:
  - id: c1
    title: Alice
locations:
  - id: l1
    title: Harbor
`

func writeProject(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.novel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(projectYAML), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "matrix", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(ExportCmd(), ShowCmd(), ConfigCmd(), PingCmd())
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExportWritesNextToProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeProject(t)

	cmd := ExportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	csvPath := filepath.Join(filepath.Dir(path), "book_relationships.csv")
	assert.Contains(t, out.String(), "exported 2 scenes to "+csvPath)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, ",,Main,Love,Alice,Harbor\n1,Opening,A,,C,\n2,Storm,,,,\n", string(data))
}

func TestExportFlagsOverrideConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeProject(t)
	target := filepath.Join(t.TempDir(), "out_relationships.csv")

	cmd := ExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "-o", target, "-d", "semicolon", "--marker", "x", "--no-row-numbers"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, ";Main;Love;Alice;Harbor\nOpening;x;;x;\nStorm;;;;\n", string(data))
}

func TestExportRejectsBadFileName(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeProject(t)
	target := filepath.Join(t.TempDir(), "out.csv")

	cmd := ExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "-o", target})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid export file name")
	assert.NoFileExists(t, target)
}

func TestExportRejectsUnknownEncoding(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeProject(t)

	cmd := ExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "--encoding", "klingon"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown text encoding")
}

func TestExportWithoutProjectErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := ExportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrNoProject)
}

func TestShowPrintsCategory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeProject(t)

	cmd := ShowCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "--category", "characters"})
	require.NoError(t, cmd.Execute())

	s := out.String()
	assert.Contains(t, s, "Harbor Lights: 2 scenes, 1 characters")
	assert.Contains(t, s, "Alice")
	assert.Contains(t, s, "1 Opening")
	assert.Contains(t, s, "x")
}

func TestShowRejectsUnknownCategory(t *testing.T) {
	cmd := ShowCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"book.novel.yaml", "-c", "plots"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestParseCategory(t *testing.T) {
	cases := map[string]matrix.Category{
		"arcs":       matrix.Arc,
		"arc":        matrix.Arc,
		"Character":  matrix.Character,
		" locations": matrix.Location,
		"ITEMS":      matrix.Item,
	}
	for in, want := range cases {
		got, err := parseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestProjectFlagsResolution(t *testing.T) {
	cfg := config.Default()
	cfg.Project = "/books/configured.novel.yaml"
	cfg.HostURL = "http://localhost:9321"

	var flags ProjectFlags
	p, path, err := flags.Project(&cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &host.RemoteProject{}, p)
	assert.Empty(t, path)

	p, path, err = flags.Project(&cfg, []string{"book.novel.yaml"})
	require.NoError(t, err)
	assert.IsType(t, &host.FileProject{}, p)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "book.novel.yaml", filepath.Base(path))

	flags.Host = "http://127.0.0.1:1"
	p, _, err = flags.Project(&cfg, []string{"book.novel.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:1", p.Name())

	cfg.HostURL = ""
	_, path, err = (&ProjectFlags{}).Project(&cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "/books/configured.novel.yaml", path)

	_, _, err = (&ProjectFlags{}).Project(&config.Config{}, nil)
	assert.ErrorIs(t, err, host.ErrNoProject)
}

func TestConfigInitShowPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := ConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), config.Path())

	cmd = ConfigCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.HostToken = "secret"
	require.NoError(t, cfg.Save())

	cmd = ConfigCmd()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"show"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "csv_arc_true: A")
	assert.Contains(t, out.String(), "****")
	assert.NotContains(t, out.String(), "secret")

	cmd = ConfigCmd()
	out.Reset()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"path"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, config.Path()+"\n", out.String())
}

func TestPingAgainstBridge(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var status atomic.Value
	status.Store(`{"data":{"status":"ok"}}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(status.Load().(string)))
	}))
	t.Cleanup(srv.Close)

	out, err := execute(t, "ping", "--host", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "host ok: "+srv.URL)

	status.Store(`{"data":{"status":"indexing"}}`)
	_, err = execute(t, "ping", "--host", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host unhealthy")
	assert.Contains(t, err.Error(), "indexing")
}

func TestPingTimeoutFlag(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	_, err := execute(t, "ping", "--host", srv.URL, "--timeout", "50ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host unreachable")
}

func TestPingWithoutHostErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no host")
}

func TestUnknownSubcommandDeterministicError(t *testing.T) {
	cmd := ConfigCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"nope"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
