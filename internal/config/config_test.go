package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/teammap/internal/layout"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("log-level", "", "")
	fs.Bool("yes", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".teammap", "teammap.db"), cfg.DBPath)
	assert.False(t, cfg.Log.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, layout.DefaultConfig(), cfg.Layout.ToLayout())
	assert.Empty(t, cfg.FileUsed)
}

func TestLoad_DefaultFileIsPickedUp(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".teammap")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  node_width: 220\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.FileUsed)
	assert.Equal(t, 220.0, cfg.Layout.NodeWidth)
	assert.Equal(t, 100.0, cfg.Layout.NodeHeight, "unset keys keep defaults")
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "teammap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /from/file.db
log:
  enabled: true
  level: warn
layout:
  horizontal_gap: 60
`), 0o644))

	t.Setenv("TEAMMAP_DB_PATH", "/from/env.db")
	t.Setenv("TEAMMAP_LOG__LEVEL", "debug")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--db", "/from/flag.db", "--yes"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag.db", cfg.DBPath, "flag beats env and file")
	assert.Equal(t, "debug", cfg.Log.Level, "env beats file")
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, 60.0, cfg.Layout.HorizontalGap)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	isolate(t)
	t.Setenv("TEAMMAP_DB_PATH", "/from/env.db")

	flags := testFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorContains(t, err, "config file")
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\nlayout:\n  node_width: 0\n  vertical_gap: -5\n"), 0o644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "log.level")
	assert.ErrorContains(t, err, "node size must be positive")
	assert.ErrorContains(t, err, "gaps must not be negative")
}

func TestSlogLevel(t *testing.T) {
	lvl, err := LogConfig{Level: "WARN"}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}
