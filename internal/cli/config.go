package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	maxWalkDepth = 25
)

// Config represents the pgddl configuration from pgddl.yaml.
type Config struct {
	// Changes is the default change file for render.
	Changes string `mapstructure:"changes" json:"changes"`

	Render RenderConfig `mapstructure:"render" json:"render"`
	Log    LogConfig    `mapstructure:"log" json:"log"`
}

// RenderConfig holds render command settings.
type RenderConfig struct {
	QuoteExclusionNames bool   `mapstructure:"quote_exclusion_names" json:"quote_exclusion_names"`
	Terminator          bool   `mapstructure:"terminator" json:"terminator"`
	Header              bool   `mapstructure:"header" json:"header"`
	Output              string `mapstructure:"output" json:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("PGDDL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		return nil, configPath, err
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, configPath, fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("changes", "changes.yaml")

	v.SetDefault("render.quote_exclusion_names", false)
	v.SetDefault("render.terminator", false)
	v.SetDefault("render.header", false)
	v.SetDefault("render.output", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for pgddl.yaml or pgddl.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range []string{"pgddl.yaml", "pgddl.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		// Check for repo boundary (.git file or directory)
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// ParseLevel maps a configured level name onto a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// ResolvedLevel returns the effective log level. Each -v lowers the
// configured level by one step (warn, info, debug); quiet raises it to error.
func (c *Config) ResolvedLevel(verbose int, quiet bool) slog.Level {
	if quiet {
		return slog.LevelError
	}
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	level -= slog.Level(4 * verbose)
	if level < slog.LevelDebug {
		level = slog.LevelDebug
	}
	return level
}
