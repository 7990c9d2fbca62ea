// Package report extracts the main error and call stack from raw crash
// dumps. It is the boundary between whatever produced the dump (JSON or
// plain text) and the engine, which only sees plain strings.
package report

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/crashlens/crashlens/internal/callstack"
	"github.com/crashlens/crashlens/internal/domain"
)

// Field paths tried in order when the dump is JSON. First present wins.
var (
	mainErrorPaths = []string{"mainError", "main_error", "error", "exception.message"}
	callStackPaths = []string{"callStack", "call_stack", "stack", "stackTrace", "exception.stackTrace"}
)

// Parse extracts a CrashReport from raw dump bytes. JSON dumps are probed
// for well-known field names; anything else is treated as plain text.
func Parse(data []byte) domain.CrashReport {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") && gjson.Valid(trimmed) {
		return fromJSON(trimmed)
	}
	return FromText(trimmed)
}

func fromJSON(data string) domain.CrashReport {
	var r domain.CrashReport
	for _, path := range mainErrorPaths {
		if v := gjson.Get(data, path); v.Exists() {
			r.MainError = v.String()
			break
		}
	}
	for _, path := range callStackPaths {
		v := gjson.Get(data, path)
		if !v.Exists() {
			continue
		}
		if v.IsArray() {
			var lines []string
			v.ForEach(func(_, line gjson.Result) bool {
				lines = append(lines, line.String())
				return true
			})
			r.CallStack = strings.Join(lines, "\n")
		} else {
			r.CallStack = v.String()
		}
		break
	}
	return r
}

// FromText splits a plain-text dump: everything before the first
// frame-looking line is the main error, the rest is the call stack.
func FromText(text string) domain.CrashReport {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if callstack.LooksLikeFrame(line) {
			return domain.CrashReport{
				MainError: strings.TrimSpace(strings.Join(lines[:i], "\n")),
				CallStack: strings.Join(lines[i:], "\n"),
			}
		}
	}
	return domain.CrashReport{MainError: strings.TrimSpace(text)}
}
