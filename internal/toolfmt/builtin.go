package toolfmt

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	commandLimit = 40
	urlLimit     = 40
	queryLimit   = 30
	planWords    = 5
)

// builtins returns the definitions installed into every new registry. Tools
// absent from this list still format through the base definition.
func builtins() []Definition {
	defs := []Definition{
		{Name: "Bash", FormatInput: stringParam("command", commandLimit), RendersInput: true},
		{Name: "Task", FormatInput: taskInput, RendersInput: true},
		{Name: "WebFetch", FormatInput: stringParam("url", urlLimit)},
		{Name: "WebSearch", FormatInput: stringParam("query", queryLimit)},
		{Name: "TodoWrite", FormatInput: todoInput, FormatResult: todoResult, RendersResult: true},
		{Name: "BashOutput", FormatInput: stringParam("bash_id", 0)},
		{Name: "KillShell", FormatInput: stringParam("shell_id", 0)},
		{Name: "SlashCommand", FormatInput: stringParam("command", 0)},
		{Name: "NotebookEdit", FormatInput: fileBasename("notebook_path")},
		{Name: "ExitPlanMode", FormatInput: planInput, RendersInput: true},
	}
	for _, name := range []string{"Read", "Write", "Edit"} {
		defs = append(defs, Definition{
			Name:          name,
			FormatInput:   fileBasename("file_path"),
			FormatResult:  fileLineCount,
			RendersResult: name == "Read",
		})
	}
	for _, name := range []string{"Grep", "Glob"} {
		defs = append(defs, Definition{
			Name:         name,
			FormatInput:  stringParam("pattern", 0),
			FormatResult: matchLineCount,
		})
	}
	return defs
}

// stringParam extracts one named string parameter, truncating when limit > 0.
func stringParam(key string, limit int) func(map[string]any, json.RawMessage) string {
	return func(input map[string]any, _ json.RawMessage) string {
		value, _ := input[key].(string)
		if limit > 0 {
			value = truncate(value, limit)
		}
		return value
	}
}

func fileBasename(key string) func(map[string]any, json.RawMessage) string {
	return func(input map[string]any, _ json.RawMessage) string {
		path, _ := input[key].(string)
		if path == "" {
			return ""
		}
		return filepath.Base(path)
	}
}

func taskInput(input map[string]any, _ json.RawMessage) string {
	if description, _ := input["description"].(string); description != "" {
		return truncate(description, commandLimit)
	}
	prompt, _ := input["prompt"].(string)
	return truncate(prompt, commandLimit)
}

func planInput(input map[string]any, _ json.RawMessage) string {
	plan, _ := input["plan"].(string)
	return truncateWords(plan, planWords)
}

// lineMarker matches the cat -n style "  123→" prefix file tools put on each
// returned line.
var lineMarker = regexp.MustCompile(`(?m)^\s*\d+→`)

// fileLineCount counts result lines by their line-number markers, falling
// back to non-blank lines when the result carries no markers.
func fileLineCount(_ map[string]any, resultText string) string {
	if resultText == "" {
		return ""
	}
	count := len(lineMarker.FindAllString(resultText, -1))
	if count == 0 {
		count = nonBlankLines(resultText)
	}
	return pluralize(count, "line")
}

func matchLineCount(_ map[string]any, resultText string) string {
	count := nonBlankLines(resultText)
	if count == 0 {
		return ""
	}
	return pluralize(count, "line")
}

func nonBlankLines(s string) int {
	count := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func todoInput(input map[string]any, _ json.RawMessage) string {
	todos, ok := input["todos"].([]any)
	if !ok {
		return ""
	}
	return pluralize(len(todos), "todo")
}

// todoResult tallies todo statuses from the call's input, which is the
// authoritative source; the result text only echoes a reminder string.
func todoResult(input map[string]any, _ string) string {
	todos, ok := input["todos"].([]any)
	if !ok {
		return ""
	}

	var pending, inProgress, completed int
	for _, item := range todos {
		todo, ok := item.(map[string]any)
		if !ok {
			continue
		}
		switch todo["status"] {
		case "pending":
			pending++
		case "in_progress":
			inProgress++
		case "completed":
			completed++
		}
	}

	var parts []string
	if pending > 0 {
		parts = append(parts, fmt.Sprintf("%d pending", pending))
	}
	if inProgress > 0 {
		parts = append(parts, fmt.Sprintf("%d in progress", inProgress))
	}
	if completed > 0 {
		parts = append(parts, fmt.Sprintf("%d completed", completed))
	}
	return strings.Join(parts, ", ")
}
