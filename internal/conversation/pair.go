package conversation

import "log/slog"

// PairToolResults walks the message list once, left to right, and links every
// tool_result block in a user message to the assistant message that issued
// the matching tool_use. The list is mutated in place and returned.
//
// Guarantees:
//   - a result only pairs with a tool_use at or before its own position;
//   - a user message consisting solely of tool results is marked Hide;
//   - running the pairing a second time changes nothing.
//
// A duplicate tool_use id overwrites the earlier pending mapping (last wins)
// with a warning. Whether first-wins would be more correct is unknowable from
// the trace alone, so the observed overwrite behavior is kept as is.
//
// Any internal panic is recovered and logged, and the messages are returned
// in whatever state the scan reached; malformed data must never take down the
// caller.
func PairToolResults(messages []*Message) []*Message {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Tool-result pairing aborted", "panic", r)
		}
	}()

	// tool_use id -> index of the assistant message that issued it. Entries
	// leave pending once paired, so seen tracks every id issued during the
	// scan separately.
	pending := make(map[string]int)
	seen := make(map[string]bool)

	for i, msg := range messages {
		switch msg.Role {
		case RoleAssistant:
			for _, block := range msg.Content {
				if block.Type != BlockToolUse {
					continue
				}
				if seen[block.ID] {
					slog.Warn("Duplicate tool_use id, keeping latest occurrence", "tool_use_id", block.ID)
				}
				seen[block.ID] = true
				pending[block.ID] = i
			}

		case RoleUser:
			resultsOnly := len(msg.Content) > 0
			for j := range msg.Content {
				block := &msg.Content[j]
				if block.Type != BlockToolResult {
					resultsOnly = false
					continue
				}
				owner, ok := pending[block.ToolUseID]
				if !ok {
					slog.Warn("Tool result without a matching call", "tool_use_id", block.ToolUseID)
					continue
				}
				attach(messages[owner], block)
				delete(pending, block.ToolUseID)
			}
			if resultsOnly {
				msg.Hide = true
			}
		}
	}

	if len(pending) > 0 {
		slog.Info("Tool calls left without results", "count", len(pending))
	}
	return messages
}

func attach(owner *Message, result *ContentBlock) {
	if owner.ToolResults == nil {
		owner.ToolResults = make(map[string]*ContentBlock)
	}
	owner.ToolResults[result.ToolUseID] = result
}
