// Package callstack parses raw call-stack dumps and derives structural
// diagnostics from them.
package callstack

import (
	"regexp"
	"strings"

	"github.com/crashlens/crashlens/internal/domain"
)

var (
	// Well-formed frame: "[idx] 0xADDR module_or_function[+offset] [-> function]"
	frameRegex = regexp.MustCompile(`^\s*\[\s*\d+\s*\]\s+(0x[0-9a-fA-F]+)\s+(\S+)(?:\s*->\s*(\S+))?\s*$`)

	hexRegex    = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	moduleRegex = regexp.MustCompile(`(?i)[\w.-]+\.(?:dll|exe)`)
	arrowRegex  = regexp.MustCompile(`->\s*(\S+)`)
)

// Parser converts raw call-stack text into structured frames. Unparseable
// lines are never errors: they get a best-effort fallback frame when they
// contain a hex-looking substring, and are dropped otherwise.
type Parser struct{}

// NewParser creates a new call-stack parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse splits the input into non-empty lines and builds one frame per
// recognizable line. Frame indices follow parse order, starting at 0.
func (p *Parser) Parse(callStack string) []domain.StackFrame {
	var frames []domain.StackFrame
	for _, line := range strings.Split(callStack, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if frame, ok := parseLine(len(frames), line); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}

// LooksLikeFrame reports whether a line would produce a frame. Used by
// report extraction to find where the main error ends and the stack begins.
func LooksLikeFrame(line string) bool {
	return frameRegex.MatchString(line) || hexRegex.MatchString(line)
}

func parseLine(index int, line string) (domain.StackFrame, bool) {
	m := frameRegex.FindStringSubmatch(line)
	if m == nil {
		return fallbackFrame(index, line)
	}

	token, offset := splitOffset(m[2])
	function := token
	if m[3] != "" {
		function = m[3]
	}

	return domain.StackFrame{
		Index:    index,
		Address:  m[1],
		Module:   moduleRegex.FindString(token),
		Function: function,
		Offset:   offset,
		Raw:      strings.TrimSpace(line),
	}, true
}

// splitOffset strips a trailing "+offset" from a module/function token.
func splitOffset(token string) (string, string) {
	if i := strings.Index(token, "+"); i >= 0 {
		return token[:i], token[i+1:]
	}
	return token, ""
}

// fallbackFrame salvages a frame from an irregular line that still carries a
// hex-looking substring. The heuristics here are deliberately loose; tests
// pin their behavior as the reference.
func fallbackFrame(index int, line string) (domain.StackFrame, bool) {
	address := hexRegex.FindString(line)
	if address == "" {
		return domain.StackFrame{}, false
	}

	module := moduleRegex.FindString(line)
	return domain.StackFrame{
		Index:    index,
		Address:  address,
		Module:   module,
		Function: extractFunction(line, module),
		Raw:      strings.TrimSpace(line),
	}, true
}

// extractFunction finds a function name on an irregular line: an arrow
// target wins, else the first token immediately following the module that
// is not an offset or another address.
func extractFunction(line, module string) string {
	if m := arrowRegex.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if module == "" {
		return ""
	}

	i := strings.Index(strings.ToLower(line), strings.ToLower(module))
	if i < 0 {
		return ""
	}
	rest := line[i+len(module):]
	for _, token := range strings.Fields(rest) {
		if strings.HasPrefix(token, "+") || strings.HasPrefix(token, "0x") {
			continue
		}
		return token
	}
	return ""
}
