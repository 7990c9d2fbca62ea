package domain

import "time"

// CrashReport is the extracted text of one crash: the primary error line(s)
// and the raw call-stack dump. Both may be empty.
type CrashReport struct {
	MainError string `json:"main_error"`
	CallStack string `json:"call_stack"`
}

// Suspect is a named crash hypothesis: a rule set plus a base severity tier
// and optional qualitative factors.
type Suspect struct {
	Name    string           `json:"name"`
	Tier    int              `json:"tier"`
	Signals []string         `json:"signals"`
	Factors *SeverityFactors `json:"factors,omitempty"`
}

// SuspectVerdict pairs a suspect with its match outcome and scored severity.
type SuspectVerdict struct {
	Suspect    string             `json:"suspect"`
	Match      SignalMatchResult  `json:"match"`
	Assessment SeverityAssessment `json:"assessment"`
}

// Diagnosis is the full result of evaluating a report against a catalogue:
// per-suspect verdicts ordered by score (descending), the combined verdict
// over all matching suspects, and the structural stack analysis.
type Diagnosis struct {
	Verdicts []SuspectVerdict   `json:"verdicts,omitempty"`
	Combined SeverityAssessment `json:"combined"`
	Stack    CallStackAnalysis  `json:"stack"`
	Duration time.Duration      `json:"duration"`
}

// MatchCount returns how many verdicts matched.
func (d *Diagnosis) MatchCount() int {
	n := 0
	for _, v := range d.Verdicts {
		if v.Match.IsMatch {
			n++
		}
	}
	return n
}
