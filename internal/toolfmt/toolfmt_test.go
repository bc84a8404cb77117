package toolfmt

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harunnryd/emaki/internal/conversation"
)

// call builds a tool_use block from raw JSON input, preserving wire key
// order the way the conversation decoder does.
func call(t *testing.T, name, rawInput string) *conversation.ContentBlock {
	t.Helper()
	input := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(rawInput), &input))
	return &conversation.ContentBlock{
		Type:     conversation.BlockToolUse,
		ID:       "tu_1",
		Name:     name,
		Input:    input,
		RawInput: json.RawMessage(rawInput),
	}
}

func result(content string) *conversation.ContentBlock {
	return &conversation.ContentBlock{
		Type:      conversation.BlockToolResult,
		ToolUseID: "tu_1",
		Content:   content,
	}
}

func TestRegistry_GetAlwaysReturnsDefinition(t *testing.T) {
	r := NewRegistry()

	def := r.Get("NeverHeardOfIt")
	require.NotNil(t, def.FormatInput)
	require.NotNil(t, def.FormatResult)
	assert.Equal(t, "NeverHeardOfIt", def.Name)
	assert.False(t, def.RendersInput)
	assert.False(t, def.RendersResult)
}

func TestFormatToolCall_UnregisteredToolUsesFirstParam(t *testing.T) {
	r := NewRegistry()

	got := r.FormatToolCall(call(t, "FutureTool", `{"some_param":"value","another":"ignored"}`))
	assert.Equal(t, "FutureTool(value)", got)

	// The base result formatter never produces a summary.
	withResult := r.FormatToolResult(call(t, "FutureTool", `{"some_param":"value"}`), result("lots of output"))
	assert.Equal(t, "FutureTool(value)", withResult)
}

func TestFormatToolCall_BaseParamPriority(t *testing.T) {
	r := NewRegistry()

	// pattern outranks url regardless of wire order.
	got := r.FormatToolCall(call(t, "Mystery", `{"url":"https://x","pattern":"abc"}`))
	assert.Equal(t, "Mystery(abc)", got)
}

func TestFormatToolCall_EmptyInput(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "Mystery", r.FormatToolCall(call(t, "Mystery", `{}`)))
}

func TestFormatToolCall_Read(t *testing.T) {
	r := NewRegistry()
	got := r.FormatToolCall(call(t, "Read", `{"file_path":"/src/App.tsx"}`))
	assert.Equal(t, "Read(App.tsx)", got)
}

func TestFormatToolResult_ReadLineCount(t *testing.T) {
	r := NewRegistry()

	var b strings.Builder
	for i := 1; i <= 250; i++ {
		fmt.Fprintf(&b, "%6d→some code\n", i)
	}

	got := r.FormatToolResult(call(t, "Read", `{"file_path":"/src/App.tsx"}`), result(b.String()))
	assert.Equal(t, "Read(App.tsx, [250 lines])", got)
}

func TestFormatToolResult_ReadFallsBackToNonBlankLines(t *testing.T) {
	r := NewRegistry()

	got := r.FormatToolResult(call(t, "Read", `{"file_path":"/a.txt"}`), result("one\n\ntwo\nthree\n"))
	assert.Equal(t, "Read(a.txt, [3 lines])", got)
}

func TestFormatToolResult_SingleLine(t *testing.T) {
	r := NewRegistry()
	got := r.FormatToolResult(call(t, "Read", `{"file_path":"/a.txt"}`), result("     1→package main\n"))
	assert.Equal(t, "Read(a.txt, [1 line])", got)
}

func TestFormatToolCall_BashTruncates(t *testing.T) {
	r := NewRegistry()
	long := strings.Repeat("x", 60)

	got := r.FormatToolCall(call(t, "Bash", `{"command":"`+long+`"}`))
	assert.Equal(t, "Bash("+strings.Repeat("x", 40)+"…)", got)

	// Bash never shows a result summary.
	withResult := r.FormatToolResult(call(t, "Bash", `{"command":"ls"}`), result("a\nb\nc"))
	assert.Equal(t, "Bash(ls)", withResult)
}

func TestFormatToolResult_GrepCountsNonBlankLines(t *testing.T) {
	r := NewRegistry()

	got := r.FormatToolResult(call(t, "Grep", `{"pattern":"func main"}`), result("main.go:1\n\nutil.go:3\n"))
	assert.Equal(t, "Grep(func main, [2 lines])", got)

	empty := r.FormatToolResult(call(t, "Grep", `{"pattern":"nope"}`), result(""))
	assert.Equal(t, "Grep(nope)", empty)
}

func TestFormatToolResult_TodoWrite(t *testing.T) {
	r := NewRegistry()
	input := `{"todos":[
		{"content":"a","status":"pending"},
		{"content":"b","status":"pending"},
		{"content":"c","status":"pending"},
		{"content":"d","status":"in_progress"},
		{"content":"e","status":"completed"},
		{"content":"f","status":"completed"},
		{"content":"g","status":"completed"},
		{"content":"h","status":"completed"}
	]}`

	got := r.FormatToolResult(call(t, "TodoWrite", input), result("Todos have been modified successfully"))
	assert.Equal(t, "TodoWrite(8 todos, [3 pending, 1 in progress, 4 completed])", got)
}

func TestFormatToolResult_TodoWriteOmitsZeroCategories(t *testing.T) {
	r := NewRegistry()
	input := `{"todos":[{"content":"a","status":"completed"}]}`

	got := r.FormatToolResult(call(t, "TodoWrite", input), result("ok"))
	assert.Equal(t, "TodoWrite(1 todo, [1 completed])", got)
}

func TestFormatToolResult_TodoWriteEmptyList(t *testing.T) {
	r := NewRegistry()

	got := r.FormatToolResult(call(t, "TodoWrite", `{"todos":[]}`), result("ok"))
	assert.Equal(t, "TodoWrite(0 todos)", got)
}

func TestFormatToolCall_WebSearchTruncatesAt30(t *testing.T) {
	r := NewRegistry()
	long := strings.Repeat("q", 45)

	got := r.FormatToolCall(call(t, "WebSearch", `{"query":"`+long+`"}`))
	assert.Equal(t, "WebSearch("+strings.Repeat("q", 30)+"…)", got)
}

func TestFormatToolCall_TaskPrefersDescription(t *testing.T) {
	r := NewRegistry()

	got := r.FormatToolCall(call(t, "Task", `{"prompt":"the long prompt","description":"short desc"}`))
	assert.Equal(t, "Task(short desc)", got)

	fallback := r.FormatToolCall(call(t, "Task", `{"prompt":"only a prompt"}`))
	assert.Equal(t, "Task(only a prompt)", fallback)
}

func TestFormatToolCall_ExitPlanModeFirstFiveWords(t *testing.T) {
	r := NewRegistry()

	got := r.FormatToolCall(call(t, "ExitPlanMode", `{"plan":"first second third fourth fifth sixth seventh"}`))
	assert.Equal(t, "ExitPlanMode(first second third fourth fifth…)", got)

	short := r.FormatToolCall(call(t, "ExitPlanMode", `{"plan":"just three words"}`))
	assert.Equal(t, "ExitPlanMode(just three words)", short)
}

func TestFormatToolCall_SingleParamTools(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, "BashOutput(shell_42)", r.FormatToolCall(call(t, "BashOutput", `{"bash_id":"shell_42"}`)))
	assert.Equal(t, "KillShell(shell_42)", r.FormatToolCall(call(t, "KillShell", `{"shell_id":"shell_42"}`)))
	assert.Equal(t, "SlashCommand(/review)", r.FormatToolCall(call(t, "SlashCommand", `{"command":"/review"}`)))
	assert.Equal(t, "NotebookEdit(analysis.ipynb)", r.FormatToolCall(call(t, "NotebookEdit", `{"notebook_path":"/nb/analysis.ipynb"}`)))
}

func TestCapabilityFlags(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Get("Bash").RendersInput)
	assert.True(t, r.Get("Read").RendersResult)
	assert.True(t, r.Get("TodoWrite").RendersResult)
	assert.False(t, r.Get("Write").RendersResult)
	assert.False(t, r.Get("Glob").RendersInput)
	assert.False(t, r.Get("FutureTool").RendersInput)
}
