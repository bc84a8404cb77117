// Package render turns paired conversations and cost summaries into terminal
// output.
package render

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/harunnryd/emaki/internal/conversation"
	"github.com/harunnryd/emaki/internal/pricing"
	"github.com/harunnryd/emaki/internal/toolfmt"
)

type Options struct {
	// Plain disables all styling, for piping and file output.
	Plain bool
	// ShowHidden includes messages the pairer marked hide.
	ShowHidden bool
}

type Renderer struct {
	registry *toolfmt.Registry
	opts     Options

	roleStyle   lipgloss.Style
	toolStyle   lipgloss.Style
	errorStyle  lipgloss.Style
	costStyle   lipgloss.Style
	borderStyle lipgloss.Style
	headerStyle lipgloss.Style
}

func New(registry *toolfmt.Registry, opts Options) *Renderer {
	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")

	return &Renderer{
		registry:    registry,
		opts:        opts,
		roleStyle:   lipgloss.NewStyle().Foreground(purple).Bold(true),
		toolStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		errorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		costStyle:   lipgloss.NewStyle().Foreground(gray),
		borderStyle: lipgloss.NewStyle().Foreground(purple),
		headerStyle: lipgloss.NewStyle().Foreground(purple).Bold(true).Padding(0, 1),
	}
}

func (r *Renderer) styled(style lipgloss.Style, s string) string {
	if r.opts.Plain {
		return s
	}
	return style.Render(s)
}

// Conversation renders one reconstructed, paired message list.
func (r *Renderer) Conversation(messages []*conversation.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		if msg.Hide && !r.opts.ShowHidden {
			continue
		}
		r.message(&b, msg)
	}
	return b.String()
}

func (r *Renderer) message(b *strings.Builder, msg *conversation.Message) {
	header := string(msg.Role)
	if msg.Hide {
		header += " (hidden)"
	}
	fmt.Fprintln(b, r.styled(r.roleStyle, header))

	for i := range msg.Content {
		block := &msg.Content[i]
		switch block.Type {
		case conversation.BlockText:
			if text := strings.TrimRight(block.Text, "\n"); text != "" {
				fmt.Fprintln(b, text)
			}

		case conversation.BlockToolUse:
			line := r.registry.FormatToolResult(block, msg.ToolResults[block.ID])
			fmt.Fprintln(b, r.styled(r.toolStyle, "⏺ "+line))

		case conversation.BlockToolResult:
			line := "⎿ result for " + block.ToolUseID
			if block.IsError {
				fmt.Fprintln(b, r.styled(r.errorStyle, line+" (error)"))
			} else {
				fmt.Fprintln(b, r.styled(r.costStyle, line))
			}
		}
	}
	fmt.Fprintln(b)
}

// CostRow is one priced trace entry for the cost table.
type CostRow struct {
	EntryID string
	Model   string
	Usage   pricing.TokenUsage
	Cost    *float64
}

// CostTable renders per-entry costs plus the aggregate footer. Unpriced
// entries show "n/a"; the total line carries a marker when it is incomplete.
func (r *Renderer) CostTable(rows []CostRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Entry", "Model", "Input", "Output", "Cache R", "Cache W", "Cost")

	costs := make([]*float64, 0, len(rows))
	for _, row := range rows {
		cost := "n/a"
		if row.Cost != nil {
			cost = pricing.FormatCost(*row.Cost)
		}
		t.Row(
			shorten(row.EntryID, 12),
			row.Model,
			fmt.Sprint(row.Usage.Input),
			fmt.Sprint(row.Usage.Output),
			fmt.Sprint(row.Usage.CacheRead),
			fmt.Sprint(row.Usage.CacheWrite5m+row.Usage.CacheWrite1h),
			cost,
		)
		costs = append(costs, row.Cost)
	}

	total, incomplete := pricing.Aggregate(costs)
	footer := "Total: n/a"
	if total != nil {
		footer = "Total: " + pricing.FormatCost(*total)
		if incomplete {
			footer += " (some entries unpriced)"
		}
	}

	return t.String() + "\n" + r.styled(r.costStyle, footer) + "\n"
}

func shorten(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
