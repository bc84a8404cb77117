package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

const (
	DefaultLogLevel = "info"
)

type Config struct {
	Log     LogConfig     `koanf:"log"`
	Render  RenderConfig  `koanf:"render"`
	Pricing PricingConfig `koanf:"pricing"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type RenderConfig struct {
	Plain      bool `koanf:"plain"`
	ShowHidden bool `koanf:"show_hidden"`
}

type PricingConfig struct {
	// LongContextThresholds overrides the token count at which a model
	// family switches to long-context rates, keyed by normalized model
	// prefix (e.g. "claude-sonnet-4-5").
	LongContextThresholds map[string]int `koanf:"long_context_thresholds"`
}

// Load resolves configuration in layers: hardcoded defaults, then the config
// file (--config flag or ~/.emaki/config.yaml), then EMAKI_ environment
// variables, then CLI flags.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"log.level":          DefaultLogLevel,
		"render.plain":       false,
		"render.show_hidden": false,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".emaki", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	k.Load(env.Provider("EMAKI_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "EMAKI_")), "_", ".", -1)
	}), nil)

	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
