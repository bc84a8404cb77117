package main

import (
	"os"

	"github.com/harunnryd/emaki/internal/pricing"
	"github.com/harunnryd/emaki/internal/render"
	"github.com/harunnryd/emaki/internal/stream"
	"github.com/harunnryd/emaki/internal/toolfmt"
	"github.com/harunnryd/emaki/internal/trace"

	"github.com/spf13/cobra"
)

var costCmd = &cobra.Command{
	Use:   "cost <trace.jsonl>",
	Short: "Compute per-entry and total cost for a trace log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := expandPath(args[0])
		if err != nil {
			return err
		}
		entries, err := trace.LoadFile(path)
		if err != nil {
			return err
		}

		calc := newCalculator(cfg)
		streams := stream.New()

		rows := make([]render.CostRow, 0, len(entries))
		for _, entry := range entries {
			model := entry.Model()
			usage := entry.Usage()

			// A streamed response records its usage inside the stream
			// events, not in a materialized body.
			if usage == nil && entry.Response != nil && entry.Response.BodyRaw != "" {
				if resp := streams.Reconstruct([]byte(entry.Response.BodyRaw)); resp != nil {
					usage = resp.Usage
					if model == "" {
						model = resp.Model
					}
				}
			}

			tokens := tokenUsage(usage)
			rows = append(rows, render.CostRow{
				EntryID: entry.ID,
				Model:   pricing.DisplayName(model),
				Usage:   tokens,
				Cost:    calc.Cost(model, tokens, usage.ContextLength()),
			})
		}

		renderer := render.New(toolfmt.NewRegistry(), render.Options{Plain: cfg.Render.Plain})
		_, err = os.Stdout.WriteString(renderer.CostTable(rows))
		return err
	},
}

func init() {
	rootCmd.AddCommand(costCmd)
	costCmd.Flags().Bool("render.plain", false, "disable styling")
}
