package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/novel-matrix/internal/matrix"
)

func withHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", dir)
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	return dir
}

func writeRaw(t *testing.T, home, content string) {
	t.Helper()
	cfgDir := filepath.Join(home, ".novel-matrix")
	require.NoError(t, os.MkdirAll(cfgDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config"), []byte(content), 0600))
}

func TestSaveConfigCreatesDirectories(t *testing.T) {
	withHome(t)

	cfg := Default()
	require.NoError(t, cfg.Save())

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigNonExistent(t *testing.T) {
	withHome(t)

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadOrDefaultMissingFileGivesDefaults(t *testing.T) {
	withHome(t)

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestSaveLoadRoundtripWithAllFields(t *testing.T) {
	withHome(t)

	original := Default()
	original.Project = "/books/novel.novel.yaml"
	original.HostURL = "http://localhost:9321"
	original.HostToken = "tok"
	original.VimKeys = false
	original.CSVArcTrue = "x"
	original.CSVItmFalse = "-"
	original.CSVRowNumbers = false
	original.CSVDelimiter = ";"
	original.CSVEncoding = "windows-1252"
	original.LogLevel = "debug"

	require.NoError(t, original.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoadConfigEmptyFileGivesDefaults(t *testing.T) {
	home := withHome(t)
	writeRaw(t, home, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoadConfigMissingKeysKeepDefaults(t *testing.T) {
	home := withHome(t)
	writeRaw(t, home, "csv_chr_true: \"*\"\ncsv_row_numbers: false\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "*", cfg.CSVChrTrue)
	assert.False(t, cfg.CSVRowNumbers)
	assert.Equal(t, "A", cfg.CSVArcTrue)
	assert.Equal(t, "utf-8", cfg.CSVEncoding)
	assert.Equal(t, "_relationships", cfg.CSVSuffix)
}

func TestLoadConfigNormalizesLooseValues(t *testing.T) {
	home := withHome(t)
	writeRaw(t, home, "csv_delimiter: \"\"\ncsv_encoding: \" \"\nlog_level: LOUD\ncsv_suffix: \"\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ",", cfg.CSVDelimiter)
	assert.Equal(t, "utf-8", cfg.CSVEncoding)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "_relationships", cfg.CSVSuffix)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	home := withHome(t)
	writeRaw(t, home, "invalid: yaml: content:")

	_, err := Load()
	assert.Error(t, err)

	_, err = LoadOrDefault()
	assert.Error(t, err)
}

func TestConfigPermissionsStrictlyEnforced(t *testing.T) {
	withHome(t)

	cfg := Default()
	cfg.HostToken = "secret"
	require.NoError(t, cfg.Save())
	require.NoError(t, os.Chmod(Path(), 0644))

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "permissions")
}

func TestDelimiter(t *testing.T) {
	cases := map[string]rune{
		",":         ',',
		";":         ';',
		"tab":       '\t',
		"\t":        '\t',
		"semicolon": ';',
		"":          ',',
		"\"":        ',',
		"|":         '|',
	}
	for in, want := range cases {
		c := Config{CSVDelimiter: in}
		assert.Equal(t, want, c.Delimiter(), "delimiter %q", in)
	}
}

func TestExportOptionsMapsMarkers(t *testing.T) {
	cfg := Default()
	cfg.CSVLocFalse = "."
	opts := cfg.ExportOptions()

	assert.True(t, opts.RowNumbers)
	assert.Equal(t, "A", opts.Markers[matrix.Arc].True)
	assert.Equal(t, "C", opts.Markers[matrix.Character].True)
	assert.Equal(t, ".", opts.Markers[matrix.Location].False)
	assert.Equal(t, "I", opts.Markers[matrix.Item].True)
	assert.Equal(t, ',', opts.Delimiter)
	assert.Equal(t, "utf-8", opts.Encoding)
	assert.Equal(t, "_relationships", opts.Suffix)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{}).SlogLevel())
}

func TestPathReturnsCorrectLocation(t *testing.T) {
	path := Path()
	assert.Contains(t, path, ".novel-matrix")
	assert.Contains(t, path, "config")
	assert.Equal(t, filepath.Dir(path), Dir())
}
