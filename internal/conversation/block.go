package conversation

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Block type discriminants as they appear on the wire.
const (
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// ContentBlock is the tagged union shared by every part of the pipeline.
// Which fields are meaningful depends on Type:
//   - text: Text
//   - tool_use: ID, Name, Input (RawInput preserves key order for formatting)
//   - tool_result: ToolUseID, Content, IsError
type ContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text,omitempty"`
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Input     map[string]any  `json:"input,omitempty"`
	RawInput  json.RawMessage `json:"-"`
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   any             `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

// rawBlock is the permissive wire shape blocks are decoded through before
// validation.
type rawBlock struct {
	Type      string          `json:"type"`
	Text      *string         `json:"text"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	IsError   bool            `json:"is_error"`
}

// decodeBlock maps one wire element to a ContentBlock. It returns false for
// unrecognized discriminants and for blocks missing required fields; callers
// drop those silently, matching the tolerant posture of the rest of the
// loader.
func decodeBlock(raw json.RawMessage) (ContentBlock, bool) {
	var rb rawBlock
	if err := json.Unmarshal(raw, &rb); err != nil {
		return ContentBlock{}, false
	}

	switch rb.Type {
	case BlockText:
		if rb.Text == nil {
			return ContentBlock{}, false
		}
		return ContentBlock{Type: BlockText, Text: *rb.Text}, true

	case BlockToolUse:
		if rb.ID == "" || rb.Name == "" {
			return ContentBlock{}, false
		}
		block := ContentBlock{Type: BlockToolUse, ID: rb.ID, Name: rb.Name}
		if len(rb.Input) > 0 {
			block.RawInput = rb.Input
			var input map[string]any
			if err := json.Unmarshal(rb.Input, &input); err == nil {
				block.Input = input
			}
		}
		if block.Input == nil {
			block.Input = map[string]any{}
		}
		return block, true

	case BlockToolResult:
		if rb.ToolUseID == "" {
			return ContentBlock{}, false
		}
		block := ContentBlock{Type: BlockToolResult, ToolUseID: rb.ToolUseID, IsError: rb.IsError}
		block.Content = decodeResultContent(rb.Content)
		return block, true
	}

	return ContentBlock{}, false
}

// decodeResultContent handles the two wire shapes of tool_result content: a
// plain string, or a list of heterogeneous blocks.
func decodeResultContent(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
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

// decodeContent maps a request message's content field, which is either a
// bare string or an array of tagged blocks, onto content blocks. Unusable
// elements are dropped.
func decodeContent(raw json.RawMessage) []ContentBlock {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []ContentBlock{{Type: BlockText, Text: s}}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		slog.Warn("Message content is neither string nor block array")
		return nil
	}

	blocks := make([]ContentBlock, 0, len(elems))
	for _, elem := range elems {
		block, ok := decodeBlock(elem)
		if !ok {
			slog.Warn("Dropping unrecognized content block")
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// ResultText flattens a tool_result's content to plain text. Block lists
// contribute their text blocks joined by newlines.
func ResultText(result *ContentBlock) string {
	if result == nil {
		return ""
	}
	switch content := result.Content.(type) {
	case string:
		return content
	case []ContentBlock:
		parts := make([]string, 0, len(content))
		for _, block := range content {
			if block.Type == BlockText {
				parts = append(parts, block.Text)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}
