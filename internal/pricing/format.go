package pricing

import (
	"fmt"
	"strings"
	"unicode"
)

// FormatCost renders a dollar amount for display. Sub-cent amounts keep four
// decimal digits so tiny per-call costs remain legible; everything else uses
// the usual two.
func FormatCost(amount float64) string {
	if amount < 0.01 {
		return fmt.Sprintf("$%.4f", amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// Aggregate sums a list of per-entry costs where nil means "unpriced model".
//
//   - all entries nil: total is nil, incomplete false (no data at all);
//   - some entries nil: total covers the priced ones, incomplete true;
//   - no entries nil: plain sum, incomplete false.
func Aggregate(costs []*float64) (total *float64, incomplete bool) {
	var sum float64
	priced, unpriced := 0, 0
	for _, cost := range costs {
		if cost == nil {
			unpriced++
			continue
		}
		sum += *cost
		priced++
	}
	if priced == 0 {
		return nil, false
	}
	return &sum, unpriced > 0
}

// DisplayName derives a human-readable model name: vendor prefix and date
// suffix stripped, separators spaced, word tokens title-cased and numeric
// version tokens kept verbatim. "claude-sonnet-4-5-20250929" -> "Sonnet 4 5".
func DisplayName(modelID string) string {
	name := NormalizeModelID(strings.TrimSpace(modelID))
	name = strings.TrimPrefix(name, "claude-")

	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	for i, token := range tokens {
		if token == "" || unicode.IsDigit(rune(token[0])) {
			continue
		}
		tokens[i] = strings.ToUpper(token[:1]) + token[1:]
	}
	return strings.Join(tokens, " ")
}
