// Package config loads teammap settings from defaults, an optional YAML file,
// TEAMMAP_ environment variables and command-line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/teammap/internal/layout"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "TEAMMAP_"

type Config struct {
	DBPath string       `koanf:"db_path"`
	Log    LogConfig    `koanf:"log"`
	Layout LayoutConfig `koanf:"layout"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

type LogConfig struct {
	Enabled bool   `koanf:"enabled"`
	Level   string `koanf:"level"`
}

type LayoutConfig struct {
	NodeWidth     float64 `koanf:"node_width"`
	NodeHeight    float64 `koanf:"node_height"`
	HorizontalGap float64 `koanf:"horizontal_gap"`
	VerticalGap   float64 `koanf:"vertical_gap"`
	StartX        float64 `koanf:"start_x"`
	StartY        float64 `koanf:"start_y"`
}

// flagKeys maps flag names to config keys. Flags not listed here are not
// configuration.
var flagKeys = map[string]string{
	"db":        "db_path",
	"log-level": "log.level",
}

// Dir is the per-user teammap directory, ~/.teammap.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".teammap"), nil
}

func defaults() (map[string]any, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	l := layout.DefaultConfig()
	return map[string]any{
		"db_path":               filepath.Join(dir, "teammap.db"),
		"log.enabled":           false,
		"log.level":             "info",
		"layout.node_width":     l.NodeWidth,
		"layout.node_height":    l.NodeHeight,
		"layout.horizontal_gap": l.HorizontalGap,
		"layout.vertical_gap":   l.VerticalGap,
		"layout.start_x":        l.StartX,
		"layout.start_y":        l.StartY,
	}, nil
}

// Load builds the configuration. cfgFile may be empty, in which case
// ~/.teammap/config.yaml is read when it exists. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defs, err := defaults()
	if err != nil {
		return nil, err
	}
	if err := k.Load(confmap.Provider(defs, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	used, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", used, err)
		}
	}

	// TEAMMAP_DB_PATH -> db_path, TEAMMAP_LOG__LEVEL -> log.level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.FileUsed = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns explicit when set (it must exist), otherwise the
// default file when present.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Layout.NodeWidth <= 0 || c.Layout.NodeHeight <= 0 {
		errs = append(errs, fmt.Errorf("layout node size must be positive (got %vx%v)", c.Layout.NodeWidth, c.Layout.NodeHeight))
	}
	if c.Layout.HorizontalGap < 0 || c.Layout.VerticalGap < 0 {
		errs = append(errs, errors.New("layout gaps must not be negative"))
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level as a slog level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

func (l LayoutConfig) ToLayout() layout.Config {
	return layout.Config{
		NodeWidth:     l.NodeWidth,
		NodeHeight:    l.NodeHeight,
		HorizontalGap: l.HorizontalGap,
		VerticalGap:   l.VerticalGap,
		StartX:        l.StartX,
		StartY:        l.StartY,
	}
}
