// Package toolfmt renders one-line summaries of tool calls and their results
// for conversation display. Every tool name resolves to a definition; names
// nobody registered get the base definition, so formatting never fails on an
// unknown tool.
package toolfmt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/harunnryd/emaki/internal/conversation"
)

// Definition describes how one tool's invocations are summarized. Absent
// function fields fall back to the base behavior when resolved through a
// registry. RendersInput/RendersResult advertise optional rich-rendering
// hooks owned by presentation code; the flags themselves are part of the
// dispatch contract.
type Definition struct {
	Name        string
	DisplayName string

	// FormatInput reduces the call's input to a short identifying string.
	// input is the decoded mapping; raw preserves the wire key order.
	FormatInput func(input map[string]any, raw json.RawMessage) string

	// FormatResult summarizes the paired result, or returns "" when the tool
	// has nothing compact to say about it.
	FormatResult func(input map[string]any, resultText string) string

	RendersInput  bool
	RendersResult bool
}

// Registry is the dispatch table from tool name to definition. It is
// populated once at construction and read-only afterwards; concurrent
// formatting is safe.
type Registry struct {
	defs map[string]Definition
	base Definition
}

// NewRegistry builds a registry containing the base definition plus all
// builtin tool definitions.
func NewRegistry() *Registry {
	r := &Registry{
		defs: make(map[string]Definition),
		base: Definition{
			FormatInput:  baseFormatInput,
			FormatResult: func(map[string]any, string) string { return "" },
		},
	}
	for _, def := range builtins() {
		r.register(def)
	}
	return r
}

func (r *Registry) register(def Definition) {
	if def.Name == "" {
		panic("toolfmt: definition without a name")
	}
	if def.FormatInput == nil {
		def.FormatInput = r.base.FormatInput
	}
	if def.FormatResult == nil {
		def.FormatResult = r.base.FormatResult
	}
	r.defs[def.Name] = def
}

// Get returns the definition for a tool name, or the base definition for
// unregistered names. It never returns an unusable definition.
func (r *Registry) Get(name string) Definition {
	if def, ok := r.defs[name]; ok {
		return def
	}
	def := r.base
	def.Name = name
	return def
}

// displayName resolves the name shown for the tool, which defaults to its
// wire name.
func (d Definition) displayName() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

// FormatToolCall renders "Name(input)", or a bare "Name" when the formatted
// input is empty.
func (r *Registry) FormatToolCall(call *conversation.ContentBlock) string {
	def := r.Get(call.Name)
	input := def.FormatInput(call.Input, call.RawInput)
	if input == "" {
		return def.displayName()
	}
	return fmt.Sprintf("%s(%s)", def.displayName(), input)
}

// FormatToolResult renders "Name(input, [summary])" when the definition
// produces a result summary, falling back to the plain call format when it
// does not.
func (r *Registry) FormatToolResult(call *conversation.ContentBlock, result *conversation.ContentBlock) string {
	def := r.Get(call.Name)
	summary := def.FormatResult(call.Input, conversation.ResultText(result))
	if summary == "" {
		return r.FormatToolCall(call)
	}
	input := def.FormatInput(call.Input, call.RawInput)
	if input == "" {
		return fmt.Sprintf("%s([%s])", def.displayName(), summary)
	}
	return fmt.Sprintf("%s(%s, [%s])", def.displayName(), input, summary)
}

// Parameter keys commonly carrying the one value worth showing, in priority
// order.
var commonInputKeys = []string{
	"file_path", "path", "command", "pattern", "url", "query", "description", "prompt",
}

// baseFormatInput picks the first present common parameter, falling back to
// the value of the input's first key in wire order, or "" for empty input.
func baseFormatInput(input map[string]any, raw json.RawMessage) string {
	for _, key := range commonInputKeys {
		if value, ok := input[key]; ok {
			if s := stringify(value); s != "" {
				return s
			}
		}
	}

	parsed := gjson.ParseBytes(raw)
	first := ""
	parsed.ForEach(func(_, value gjson.Result) bool {
		first = value.String()
		return false
	})
	if first != "" {
		return first
	}

	// No raw payload survived; any remaining map entry will do.
	for _, value := range input {
		return stringify(value)
	}
	return ""
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64, bool, int:
		return fmt.Sprint(v)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// truncate hard-cuts s at limit runes and appends an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// truncateWords keeps the first limit whitespace-separated words.
func truncateWords(s string, limit int) string {
	words := strings.Fields(s)
	if len(words) <= limit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:limit], " ") + "…"
}
