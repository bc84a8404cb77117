// Package stream rebuilds a response object from the recorded bytes of a
// server-sent-event stream. The trace log stores streamed responses verbatim,
// so the final assistant turn has to be replayed from the individual events.
package stream

import (
	"encoding/json"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/harunnryd/emaki/internal/conversation"
	"github.com/harunnryd/emaki/internal/trace"
)

// Reconstructor replays SSE payloads through the SDK's message accumulator.
// It satisfies conversation.StreamReconstructor.
type Reconstructor struct{}

func New() *Reconstructor {
	return &Reconstructor{}
}

// Reconstruct folds every data: payload in raw into a message and converts
// its content to the local block union. It returns nil when no event can be
// parsed; individual bad events are skipped.
func (*Reconstructor) Reconstruct(raw []byte) *conversation.ReconstructedResponse {
	var message anthropic.Message
	accumulated := 0

	for _, payload := range dataPayloads(raw) {
		var event anthropic.MessageStreamEventUnion
		if err := json.Unmarshal(payload, &event); err != nil {
			slog.Warn("Skipping unparseable stream event", "error", err)
			continue
		}
		if err := message.Accumulate(event); err != nil {
			slog.Warn("Skipping stream event the accumulator rejected", "error", err)
			continue
		}
		accumulated++
	}

	if accumulated == 0 {
		return nil
	}

	usage := &trace.Usage{
		InputTokens:              int(message.Usage.InputTokens),
		OutputTokens:             int(message.Usage.OutputTokens),
		CacheReadInputTokens:     int(message.Usage.CacheReadInputTokens),
		CacheCreationInputTokens: int(message.Usage.CacheCreationInputTokens),
	}
	if cc := message.Usage.CacheCreation; cc.Ephemeral5mInputTokens > 0 || cc.Ephemeral1hInputTokens > 0 {
		usage.CacheCreation = &trace.CacheCreation{
			Ephemeral5mInputTokens: int(cc.Ephemeral5mInputTokens),
			Ephemeral1hInputTokens: int(cc.Ephemeral1hInputTokens),
		}
	}

	return &conversation.ReconstructedResponse{
		Content: convertBlocks(message.Content),
		Model:   string(message.Model),
		Usage:   usage,
	}
}

// dataPayloads extracts the JSON payloads of every data: line in an SSE body,
// ignoring event: lines, comments, and the [DONE] terminator.
func dataPayloads(raw []byte) [][]byte {
	var payloads [][]byte
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if value == "" || value == "[DONE]" || !strings.HasPrefix(value, "{") {
			continue
		}
		payloads = append(payloads, []byte(value))
	}
	return payloads
}

func convertBlocks(blocks []anthropic.ContentBlockUnion) []conversation.ContentBlock {
	converted := make([]conversation.ContentBlock, 0, len(blocks))
	for _, block := range blocks {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			converted = append(converted, conversation.ContentBlock{
				Type: conversation.BlockText,
				Text: b.Text,
			})
		case anthropic.ToolUseBlock:
			rawInput, _ := json.Marshal(b.Input)
			input := map[string]any{}
			if err := json.Unmarshal(rawInput, &input); err != nil {
				input = map[string]any{}
			}
			converted = append(converted, conversation.ContentBlock{
				Type:     conversation.BlockToolUse,
				ID:       b.ID,
				Name:     b.Name,
				Input:    input,
				RawInput: rawInput,
			})
		}
	}
	return converted
}
