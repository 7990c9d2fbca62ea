package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/crashlens/crashlens/internal/domain"
)

// NDJSONWriter writes analysis results as NDJSON.
type NDJSONWriter struct {
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep log text unescaped and avoid extra allocations
	return &NDJSONWriter{encoder: enc}
}

// VerdictOutput is one suspect verdict on the wire.
type VerdictOutput struct {
	Type          string                    `json:"type"` // Always "verdict"
	SchemaVersion int                       `json:"schemaVersion"`
	Suspect       string                    `json:"suspect"`
	Match         domain.SignalMatchResult  `json:"match"`
	Assessment    domain.SeverityAssessment `json:"assessment"`
}

// DiagnosisOutput is the aggregate result on the wire.
type DiagnosisOutput struct {
	Type          string                    `json:"type"` // Always "diagnosis"
	SchemaVersion int                       `json:"schemaVersion"`
	Timestamp     time.Time                 `json:"timestamp"`
	Severity      string                    `json:"severity"`
	Combined      domain.SeverityAssessment `json:"combined"`
	SuspectCount  int                       `json:"suspect_count"`
	MatchCount    int                       `json:"match_count"`
	DurationMS    int64                     `json:"duration_ms"`
}

// StackAnalysisOutput wraps a call-stack analysis on the wire.
type StackAnalysisOutput struct {
	Type          string                   `json:"type"` // Always "stack_analysis"
	SchemaVersion int                      `json:"schemaVersion"`
	Analysis      domain.CallStackAnalysis `json:"analysis"`
}

// ErrorOutput reports a tool failure on the wire.
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

// WriteVerdict emits one suspect verdict.
func (w *NDJSONWriter) WriteVerdict(v domain.SuspectVerdict) error {
	return w.encoder.Encode(VerdictOutput{
		Type:          "verdict",
		SchemaVersion: SchemaVersion,
		Suspect:       v.Suspect,
		Match:         v.Match,
		Assessment:    v.Assessment,
	})
}

// WriteDiagnosis emits the aggregate diagnosis record.
func (w *NDJSONWriter) WriteDiagnosis(d *domain.Diagnosis, ts time.Time) error {
	return w.encoder.Encode(DiagnosisOutput{
		Type:          "diagnosis",
		SchemaVersion: SchemaVersion,
		Timestamp:     ts,
		Severity:      d.Combined.FinalLevel.String(),
		Combined:      d.Combined,
		SuspectCount:  len(d.Verdicts),
		MatchCount:    d.MatchCount(),
		DurationMS:    d.Duration.Milliseconds(),
	})
}

// WriteStackAnalysis emits the structural analysis record.
func (w *NDJSONWriter) WriteStackAnalysis(a domain.CallStackAnalysis) error {
	return w.encoder.Encode(StackAnalysisOutput{
		Type:          "stack_analysis",
		SchemaVersion: SchemaVersion,
		Analysis:      a,
	})
}

// WriteError emits a tool error record.
func (w *NDJSONWriter) WriteError(code, message string) error {
	return w.encoder.Encode(ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
	})
}

// WriteRaw emits an arbitrary record. Used for one-off output shapes.
func (w *NDJSONWriter) WriteRaw(v any) error {
	return w.encoder.Encode(v)
}
