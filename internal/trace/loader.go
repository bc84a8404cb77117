package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Trace log lines can carry full request/response bodies; the default
// bufio.Scanner limit is far too small for them.
const maxLineBytes = 64 * 1024 * 1024

// LoadFile reads a JSONL trace log. Lines that do not parse are skipped with
// a warning; only I/O failures surface as errors.
func LoadFile(path string) ([]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace log: %w", err)
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read trace log %s: %w", path, err)
	}
	return entries, nil
}

// Decode reads newline-delimited trace entries from r. Entries without an id
// are assigned a fresh ulid so callers can always address them.
func Decode(r io.Reader) ([]*Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var entries []*Entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			slog.Warn("Skipping unparseable trace line", "line", lineNo, "error", err)
			continue
		}
		if entry.ID == "" {
			entry.ID = ulid.Make().String()
		}
		entries = append(entries, &entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, err
	}
	return entries, nil
}
