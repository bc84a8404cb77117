package conversation

import (
	"encoding/json"
	"log/slog"

	"github.com/harunnryd/emaki/internal/trace"
)

// Reconstruct turns one trace entry into an ordered list of conversation
// messages: an optional system turn, the request's prior messages, and the
// final assistant turn. Malformed pieces degrade to whatever partial list can
// be built; this function never fails.
//
// The returned messages are not yet paired; run PairToolResults on them to
// link tool calls with their results.
func Reconstruct(entry *trace.Entry, streams StreamReconstructor) []*Message {
	var messages []*Message
	if entry == nil {
		return messages
	}

	if entry.Request != nil && entry.Request.Body != nil {
		body := entry.Request.Body

		if blocks := systemBlocks(body.System); len(blocks) > 0 {
			messages = append(messages, &Message{Role: RoleSystem, Content: blocks})
		}

		for _, rm := range body.Messages {
			role, ok := messageRole(rm.Role)
			if !ok {
				slog.Warn("Dropping message with unrecognized role", "role", rm.Role)
				continue
			}
			blocks := decodeContent(rm.Content)
			if len(blocks) == 0 {
				slog.Warn("Dropping message with no usable content", "role", rm.Role)
				continue
			}
			messages = append(messages, &Message{Role: role, Content: blocks})
		}
	}

	if final := finalTurn(entry, streams); len(final) > 0 {
		messages = append(messages, &Message{Role: RoleAssistant, Content: final})
	}

	return messages
}

func systemBlocks(system []trace.SystemBlock) []ContentBlock {
	blocks := make([]ContentBlock, 0, len(system))
	for _, sb := range system {
		if sb.Text == "" {
			continue
		}
		blocks = append(blocks, ContentBlock{Type: BlockText, Text: sb.Text})
	}
	return blocks
}

func messageRole(role string) (Role, bool) {
	switch role {
	case "user":
		return RoleUser, true
	case "assistant":
		return RoleAssistant, true
	}
	return "", false
}

// finalTurn assembles the trailing assistant message's blocks, preferring the
// materialized response body and falling back to stream reconstruction. Only
// text and tool_use blocks are meaningful in the model's own turn.
func finalTurn(entry *trace.Entry, streams StreamReconstructor) []ContentBlock {
	if entry.Response == nil {
		return nil
	}

	var blocks []ContentBlock
	if entry.Response.Body != nil && len(entry.Response.Body.Content) > 0 {
		blocks = decodeBlockArray(entry.Response.Body.Content)
	}
	if blocks == nil && entry.Response.BodyRaw != "" && streams != nil {
		if resp := streams.Reconstruct([]byte(entry.Response.BodyRaw)); resp != nil {
			blocks = resp.Content
		}
	}

	kept := blocks[:0]
	for _, block := range blocks {
		switch block.Type {
		case BlockText, BlockToolUse:
			kept = append(kept, block)
		default:
			slog.Warn("Dropping block from final assistant turn", "type", block.Type)
		}
	}
	return kept
}

func decodeBlockArray(raw json.RawMessage) []ContentBlock {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		slog.Warn("Response content is not a block array", "error", err)
		return nil
	}
	blocks := make([]ContentBlock, 0, len(elems))
	for _, elem := range elems {
		if block, ok := decodeBlock(elem); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
