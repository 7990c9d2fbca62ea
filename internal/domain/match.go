package domain

// MatchLocation names the text a signal matched against.
type MatchLocation string

const (
	LocationMainError MatchLocation = "main_error"
	LocationCallStack MatchLocation = "call_stack"
)

// Skip reasons set on SignalMatchResult when a rule set short-circuits.
// These are stable strings; downstream consumers switch on them.
const (
	SkipNegativeCondition = "Negative condition met"
	SkipRequiredUnmet     = "Required signals not met"
)

// SignalMatch is one resolved signal occurrence.
type SignalMatch struct {
	Signal      string        `json:"signal"`
	Pattern     string        `json:"pattern"`
	Kind        SignalKind    `json:"kind"`
	Location    MatchLocation `json:"location"`
	Occurrences int           `json:"occurrences"`

	// Occurrence constraint that was checked, stack signals only.
	MinCount int `json:"min_count,omitempty"`
	MaxCount int `json:"max_count,omitempty"`
}

// SignalMatchResult is the aggregate outcome of evaluating one rule set
// against a crash report.
type SignalMatchResult struct {
	IsMatch    bool   `json:"is_match"`
	SkipReason string `json:"skip_reason,omitempty"`

	RequiredMatches int `json:"required_matches"`
	RequiredTotal   int `json:"required_total"`
	OptionalMatches int `json:"optional_matches"`
	OptionalTotal   int `json:"optional_total"`
	StackMatches    int `json:"stack_matches"`
	StackTotal      int `json:"stack_total"`

	Matches []SignalMatch `json:"matches,omitempty"`

	// Confidence is in [0,1] and exactly 0 when IsMatch is false.
	Confidence float64 `json:"confidence"`
}

// MatchedSignals returns the number of matched signals across all categories.
func (r SignalMatchResult) MatchedSignals() int {
	return r.RequiredMatches + r.OptionalMatches + r.StackMatches
}
