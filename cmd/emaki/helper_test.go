package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harunnryd/emaki/internal/config"
	"github.com/harunnryd/emaki/internal/pricing"
	"github.com/harunnryd/emaki/internal/trace"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/traces/log.jsonl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "traces", "log.jsonl"), got)

	_, err = expandPath("   ")
	require.Error(t, err)

	got, err = expandPath("/already/absolute")
	require.NoError(t, err)
	assert.Equal(t, "/already/absolute", got)
}

func TestNewCalculator_AppliesThresholdOverrides(t *testing.T) {
	cfg := &config.Config{}
	cfg.Pricing.LongContextThresholds = map[string]int{"claude-sonnet-4-5": 100_000}

	calc := newCalculator(cfg)
	cost := calc.Cost("claude-sonnet-4-5", pricing.TokenUsage{Input: 1_000_000}, 150_000)
	require.NotNil(t, cost)
	assert.InDelta(t, 6.00, *cost, 1e-9)
}

func TestTokenUsage(t *testing.T) {
	usage := &trace.Usage{
		InputTokens:          10,
		OutputTokens:         20,
		CacheReadInputTokens: 30,
		CacheCreation: &trace.CacheCreation{
			Ephemeral5mInputTokens: 40,
			Ephemeral1hInputTokens: 50,
		},
	}

	tokens := tokenUsage(usage)
	assert.Equal(t, pricing.TokenUsage{Input: 10, Output: 20, CacheRead: 30, CacheWrite5m: 40, CacheWrite1h: 50}, tokens)
	assert.Equal(t, pricing.TokenUsage{}, tokenUsage(nil))
}
