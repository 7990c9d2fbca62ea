// Package match evaluates signal rule sets against crash-report text.
package match

import (
	"strings"

	"github.com/crashlens/crashlens/internal/domain"
)

// Matcher evaluates rule sets. It is stateless and safe for concurrent use.
type Matcher struct{}

// NewMatcher creates a new signal matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Process parses raw catalogue rules and evaluates them. Convenience wrapper
// around Evaluate for callers holding unparsed rule strings.
func (m *Matcher) Process(signals []string, mainError, callStack string) domain.SignalMatchResult {
	return m.Evaluate(domain.ParseSignals(signals), mainError, callStack)
}

// Evaluate runs one parsed rule set against the main error and call stack.
// All matching is case-insensitive substring search; occurrence counting is
// non-overlapping. An empty rule set yields a non-matching result.
func (m *Matcher) Evaluate(signals []domain.Signal, mainError, callStack string) domain.SignalMatchResult {
	var negative, required, optional, stack []domain.Signal
	for _, sig := range signals {
		switch sig.Kind {
		case domain.SignalNegative:
			negative = append(negative, sig)
		case domain.SignalRequired:
			required = append(required, sig)
		case domain.SignalOptional:
			optional = append(optional, sig)
		default:
			stack = append(stack, sig)
		}
	}

	result := domain.SignalMatchResult{
		RequiredTotal: len(required),
		OptionalTotal: len(optional),
		StackTotal:    len(stack),
	}

	lowerError := strings.ToLower(mainError)
	lowerStack := strings.ToLower(callStack)

	// Negative rules have absolute priority over everything else.
	for _, sig := range negative {
		pattern := strings.ToLower(sig.Pattern)
		if strings.Contains(lowerError, pattern) || strings.Contains(lowerStack, pattern) {
			result.SkipReason = domain.SkipNegativeCondition
			return result
		}
	}

	for _, sig := range required {
		count := CountOccurrences(lowerError, strings.ToLower(sig.Pattern))
		if count == 0 {
			result.SkipReason = domain.SkipRequiredUnmet
			result.RequiredMatches = 0
			result.Matches = nil
			return result
		}
		result.RequiredMatches++
		result.Matches = append(result.Matches, domain.SignalMatch{
			Signal:      sig.Raw,
			Pattern:     sig.Pattern,
			Kind:        domain.SignalRequired,
			Location:    domain.LocationMainError,
			Occurrences: count,
		})
	}

	for _, sig := range optional {
		count := CountOccurrences(lowerError, strings.ToLower(sig.Pattern))
		if count == 0 {
			continue
		}
		result.OptionalMatches++
		result.Matches = append(result.Matches, domain.SignalMatch{
			Signal:      sig.Raw,
			Pattern:     sig.Pattern,
			Kind:        domain.SignalOptional,
			Location:    domain.LocationMainError,
			Occurrences: count,
		})
	}

	for _, sig := range stack {
		count := CountOccurrences(lowerStack, strings.ToLower(sig.Pattern))
		if !sig.Satisfied(count) {
			continue
		}
		result.StackMatches++
		result.Matches = append(result.Matches, domain.SignalMatch{
			Signal:      sig.Raw,
			Pattern:     sig.Pattern,
			Kind:        domain.SignalStack,
			Location:    domain.LocationCallStack,
			Occurrences: count,
			MinCount:    sig.MinCount,
			MaxCount:    sig.MaxCount,
		})
	}

	if result.RequiredTotal > 0 {
		// Control only reaches here with every required rule matched.
		result.IsMatch = true
	} else {
		result.IsMatch = result.OptionalMatches > 0 || result.StackMatches > 0
	}

	if result.IsMatch {
		result.Confidence = confidence(result)
	}
	return result
}

// Category weights for the confidence blend. Only categories that are
// actually present contribute their weight to the denominator.
const (
	requiredWeight = 0.5
	optionalWeight = 0.3
	stackWeight    = 0.2
)

func confidence(r domain.SignalMatchResult) float64 {
	var sum, weight float64
	if r.RequiredTotal > 0 {
		sum += requiredWeight * float64(r.RequiredMatches) / float64(r.RequiredTotal)
		weight += requiredWeight
	}
	if r.OptionalTotal > 0 {
		sum += optionalWeight * float64(r.OptionalMatches) / float64(r.OptionalTotal)
		weight += optionalWeight
	}
	if r.StackTotal > 0 {
		sum += stackWeight * float64(r.StackMatches) / float64(r.StackTotal)
		weight += stackWeight
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

// CountOccurrences counts non-overlapping occurrences of needle in haystack.
// After each hit the search resumes past the full matched pattern, so "aa"
// in "aaaa" counts 2, not 3. Empty needles and haystacks yield 0.
func CountOccurrences(haystack, needle string) int {
	if needle == "" || haystack == "" {
		return 0
	}
	count := 0
	for {
		i := strings.Index(haystack, needle)
		if i < 0 {
			return count
		}
		count++
		haystack = haystack[i+len(needle):]
	}
}
