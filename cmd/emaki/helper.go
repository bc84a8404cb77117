package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harunnryd/emaki/internal/config"
	"github.com/harunnryd/emaki/internal/pricing"
	"github.com/harunnryd/emaki/internal/trace"
)

// expandPath resolves environment variables and "~/" home shortcuts in
// user-supplied paths.
func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("empty path")
	}

	expanded := os.ExpandEnv(trimmed)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if expanded == "~" {
			expanded = home
		} else {
			expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~/"))
		}
	}
	return filepath.Clean(expanded), nil
}

func newCalculator(cfg *config.Config) *pricing.Calculator {
	var opts []pricing.Option
	for prefix, tokens := range cfg.Pricing.LongContextThresholds {
		opts = append(opts, pricing.WithLongContextThreshold(prefix, tokens))
	}
	return pricing.NewCalculator(opts...)
}

func tokenUsage(usage *trace.Usage) pricing.TokenUsage {
	if usage == nil {
		return pricing.TokenUsage{}
	}
	return pricing.TokenUsage{
		Input:        usage.InputTokens,
		Output:       usage.OutputTokens,
		CacheRead:    usage.CacheReadInputTokens,
		CacheWrite5m: usage.CacheWrite5m(),
		CacheWrite1h: usage.CacheWrite1h(),
	}
}
