package pricing

import (
	"regexp"
	"strings"
)

// TokenUsage carries the independently billed token categories of one
// exchange.
type TokenUsage struct {
	Input        int
	Output       int
	CacheRead    int
	CacheWrite5m int
	CacheWrite1h int
}

// Entry is the pricing row for one model family. Rates are USD per million
// tokens. A zero LongContextThreshold means the family has no long-context
// tier.
type Entry struct {
	Prefix       string
	Input        float64
	Output       float64
	CacheWrite5m float64
	CacheWrite1h float64
	CacheRead    float64

	LongContextThreshold int
	LongContextInput     float64
	LongContextOutput    float64
}

// Rows are keyed by normalized family id; an identifier resolves only when it
// normalizes to exactly one of these.
var defaultTable = []Entry{
	{Prefix: "claude-opus-4-5", Input: 5.00, Output: 25.00, CacheWrite5m: 6.25, CacheWrite1h: 10.00, CacheRead: 0.50},
	{Prefix: "claude-opus-4-1", Input: 15.00, Output: 75.00, CacheWrite5m: 18.75, CacheWrite1h: 30.00, CacheRead: 1.50},
	{Prefix: "claude-opus-4", Input: 15.00, Output: 75.00, CacheWrite5m: 18.75, CacheWrite1h: 30.00, CacheRead: 1.50},
	{
		Prefix: "claude-sonnet-4-5", Input: 3.00, Output: 15.00, CacheWrite5m: 3.75, CacheWrite1h: 6.00, CacheRead: 0.30,
		LongContextThreshold: 200_000, LongContextInput: 6.00, LongContextOutput: 22.50,
	},
	{
		Prefix: "claude-sonnet-4", Input: 3.00, Output: 15.00, CacheWrite5m: 3.75, CacheWrite1h: 6.00, CacheRead: 0.30,
		LongContextThreshold: 200_000, LongContextInput: 6.00, LongContextOutput: 22.50,
	},
	{Prefix: "claude-3-7-sonnet", Input: 3.00, Output: 15.00, CacheWrite5m: 3.75, CacheWrite1h: 6.00, CacheRead: 0.30},
	{Prefix: "claude-3-5-sonnet", Input: 3.00, Output: 15.00, CacheWrite5m: 3.75, CacheWrite1h: 6.00, CacheRead: 0.30},
	{Prefix: "claude-haiku-4-5", Input: 1.00, Output: 5.00, CacheWrite5m: 1.25, CacheWrite1h: 2.00, CacheRead: 0.10},
	{Prefix: "claude-3-5-haiku", Input: 0.80, Output: 4.00, CacheWrite5m: 1.00, CacheWrite1h: 1.60, CacheRead: 0.08},
	{Prefix: "claude-3-haiku", Input: 0.25, Output: 1.25, CacheWrite5m: 0.30, CacheWrite1h: 0.50, CacheRead: 0.03},
}

// Calculator resolves model identifiers against a pricing table. The zero
// value is not usable; construct one with NewCalculator.
type Calculator struct {
	table []Entry
}

// Option adjusts the calculator's table at construction time.
type Option func(*Calculator)

// WithLongContextThreshold overrides the long-context boundary for every
// family whose prefix matches. Tier boundaries are announced, not discovered,
// so they stay configurable rather than baked in.
func WithLongContextThreshold(prefix string, tokens int) Option {
	return func(c *Calculator) {
		for i := range c.table {
			if c.table[i].Prefix == prefix && c.table[i].LongContextThreshold > 0 {
				c.table[i].LongContextThreshold = tokens
			}
		}
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{table: make([]Entry, len(defaultTable))}
	copy(c.table, defaultTable)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// dateSuffix matches a trailing -YYYYMMDD release stamp. Anything other than
// exactly eight digits is not a date and must not be stripped.
var dateSuffix = regexp.MustCompile(`-\d{8}$`)

// NormalizeModelID strips the release-date suffix from a model identifier:
// "claude-haiku-4-5-20251001" -> "claude-haiku-4-5".
func NormalizeModelID(modelID string) string {
	return dateSuffix.ReplaceAllString(modelID, "")
}

// Resolve finds the pricing row for a model identifier. After stripping the
// date suffix the id must equal a family prefix exactly: a non-date numeric
// suffix, a family name buried mid-string, or a missing vendor prefix all
// leave the model unpriced.
func (c *Calculator) Resolve(modelID string) (Entry, bool) {
	normalized := NormalizeModelID(strings.TrimSpace(modelID))
	if normalized == "" {
		return Entry{}, false
	}
	for _, entry := range c.table {
		if normalized == entry.Prefix {
			return entry, true
		}
	}
	return Entry{}, false
}

// Cost prices one exchange. It returns nil for an unknown model; a known
// model with zero usage costs exactly 0. When the context length exceeds the
// family's long-context threshold, the escalated input/output rates apply to
// the entire token count, not just the excess.
func (c *Calculator) Cost(modelID string, usage TokenUsage, contextLength int) *float64 {
	entry, ok := c.Resolve(modelID)
	if !ok {
		return nil
	}

	inputRate, outputRate := entry.Input, entry.Output
	if entry.LongContextThreshold > 0 && contextLength > entry.LongContextThreshold {
		inputRate, outputRate = entry.LongContextInput, entry.LongContextOutput
	}

	total := float64(usage.Input)/1_000_000*inputRate +
		float64(usage.CacheRead)/1_000_000*entry.CacheRead +
		float64(usage.CacheWrite5m)/1_000_000*entry.CacheWrite5m +
		float64(usage.CacheWrite1h)/1_000_000*entry.CacheWrite1h +
		float64(usage.Output)/1_000_000*outputRate

	return &total
}
