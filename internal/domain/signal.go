package domain

import (
	"strconv"
	"strings"
)

// SignalKind classifies a catalogue rule.
type SignalKind string

const (
	// SignalNegative aborts the whole rule set when its pattern is present
	// in either the main error or the call stack.
	SignalNegative SignalKind = "negative"
	// SignalRequired must be present in the main error text.
	SignalRequired SignalKind = "required"
	// SignalOptional is counted when present in the main error text.
	SignalOptional SignalKind = "optional"
	// SignalStack is evaluated against the call stack, optionally with an
	// occurrence constraint.
	SignalStack SignalKind = "stack"
)

// Signal is one parsed catalogue rule. Catalogues encode rules as strings
// ("NOT|pat", "ME-REQ|pat", "ME-OPT|pat", "3|pat", "2-5|pat", "pat"); the
// grammar is parsed once here so evaluation never re-splits the raw text.
type Signal struct {
	Raw     string     `json:"raw"`
	Kind    SignalKind `json:"kind"`
	Pattern string     `json:"pattern"`

	// Occurrence constraint for stack signals. MinCount 0 means any
	// occurrence (>0) counts; MaxCount 0 means no upper bound.
	MinCount int `json:"min_count,omitempty"`
	MaxCount int `json:"max_count,omitempty"`
}

const (
	prefixNegative = "NOT|"
	prefixRequired = "ME-REQ|"
	prefixOptional = "ME-OPT|"
)

// ParseSignal parses one encoded rule. It returns false when the pattern is
// empty after prefix stripping; such rules contribute nothing and are not
// counted toward any total.
func ParseSignal(raw string) (Signal, bool) {
	switch {
	case strings.HasPrefix(raw, prefixNegative):
		return newSignal(raw, SignalNegative, raw[len(prefixNegative):], 0, 0)
	case strings.HasPrefix(raw, prefixRequired):
		return newSignal(raw, SignalRequired, raw[len(prefixRequired):], 0, 0)
	case strings.HasPrefix(raw, prefixOptional):
		return newSignal(raw, SignalOptional, raw[len(prefixOptional):], 0, 0)
	}

	// Stack rule, optionally "N|pat" or "N-M|pat". A non-numeric head keeps
	// the whole string as the pattern, pipes included.
	if head, rest, ok := strings.Cut(raw, "|"); ok {
		if min, max, numeric := parseOccurrenceConstraint(head); numeric {
			return newSignal(raw, SignalStack, rest, min, max)
		}
	}
	return newSignal(raw, SignalStack, raw, 0, 0)
}

func newSignal(raw string, kind SignalKind, pattern string, min, max int) (Signal, bool) {
	if pattern == "" {
		return Signal{}, false
	}
	return Signal{Raw: raw, Kind: kind, Pattern: pattern, MinCount: min, MaxCount: max}, true
}

// parseOccurrenceConstraint recognizes "N" (minimum) and "N-M" (inclusive
// range) heads of a stack rule.
func parseOccurrenceConstraint(head string) (min, max int, ok bool) {
	if n, err := strconv.Atoi(head); err == nil && n >= 0 {
		return n, 0, true
	}
	lo, hi, found := strings.Cut(head, "-")
	if !found {
		return 0, 0, false
	}
	n, err := strconv.Atoi(lo)
	if err != nil || n < 0 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(hi)
	if err != nil || m < 0 {
		return 0, 0, false
	}
	return n, m, true
}

// ParseSignals parses a rule list, dropping entries with empty patterns.
func ParseSignals(raws []string) []Signal {
	signals := make([]Signal, 0, len(raws))
	for _, raw := range raws {
		if sig, ok := ParseSignal(raw); ok {
			signals = append(signals, sig)
		}
	}
	return signals
}

// Satisfied reports whether a stack occurrence count meets the signal's
// constraint.
func (s Signal) Satisfied(count int) bool {
	switch {
	case s.MinCount == 0 && s.MaxCount == 0:
		return count > 0
	case s.MaxCount == 0:
		return count >= s.MinCount
	default:
		return count >= s.MinCount && count <= s.MaxCount
	}
}
