package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/harunnryd/emaki/internal/conversation"
	"github.com/harunnryd/emaki/internal/render"
	"github.com/harunnryd/emaki/internal/stream"
	"github.com/harunnryd/emaki/internal/toolfmt"
	"github.com/harunnryd/emaki/internal/trace"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <trace.jsonl>",
	Short: "Render the conversations recorded in a trace log",
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

		output, _ := cmd.Flags().GetString("output")

		opts := render.Options{
			Plain:      cfg.Render.Plain || output != "",
			ShowHidden: cfg.Render.ShowHidden,
		}
		renderer := render.New(toolfmt.NewRegistry(), opts)
		streams := stream.New()

		var b bytes.Buffer
		for i, entry := range entries {
			if i > 0 {
				fmt.Fprintln(&b, "---")
			}
			messages := conversation.PairToolResults(conversation.Reconstruct(entry, streams))
			b.WriteString(renderer.Conversation(messages))
		}

		if output != "" {
			return atomic.WriteFile(output, &b)
		}
		_, err = os.Stdout.Write(b.Bytes())
		return err
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringP("output", "o", "", "write rendered output to a file instead of stdout")
	viewCmd.Flags().Bool("render.plain", false, "disable styling")
	viewCmd.Flags().Bool("render.show_hidden", false, "include messages hidden by tool-result pairing")
}
