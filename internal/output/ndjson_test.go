package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashlens/crashlens/internal/domain"
)

func TestNDJSONWriter_WriteVerdict(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	err := w.WriteVerdict(domain.SuspectVerdict{
		Suspect: "corrupt-render-dll",
		Match:   domain.SignalMatchResult{IsMatch: true, Confidence: 0.9},
		Assessment: domain.SeverityAssessment{
			BaseTier:   5,
			BaseLevel:  domain.SeverityCritical,
			FinalLevel: domain.SeverityCritical,
			Score:      0.95,
		},
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "verdict", decoded["type"])
	assert.Equal(t, float64(SchemaVersion), decoded["schemaVersion"])
	assert.Equal(t, "corrupt-render-dll", decoded["suspect"])

	assessment := decoded["assessment"].(map[string]any)
	assert.Equal(t, "Critical", assessment["final_level"])
}

func TestNDJSONWriter_WriteDiagnosis(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	d := &domain.Diagnosis{
		Verdicts: []domain.SuspectVerdict{
			{Suspect: "a", Match: domain.SignalMatchResult{IsMatch: true}},
			{Suspect: "b"},
		},
		Combined: domain.SeverityAssessment{FinalLevel: domain.SeverityError, Score: 0.7},
		Duration: 1500 * time.Microsecond,
	}
	require.NoError(t, w.WriteDiagnosis(d, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "diagnosis", decoded["type"])
	assert.Equal(t, "Error", decoded["severity"])
	assert.Equal(t, float64(2), decoded["suspect_count"])
	assert.Equal(t, float64(1), decoded["match_count"])
	assert.Equal(t, float64(1), decoded["duration_ms"])
}

func TestNDJSONWriter_OneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewNDJSONWriter(&buf)

	require.NoError(t, w.WriteError("NO_INPUT", "no report supplied"))
	require.NoError(t, w.WriteStackAnalysis(domain.CallStackAnalysis{IsValid: false}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)))
	}
}

func TestRenderVerdictTable(t *testing.T) {
	var buf bytes.Buffer

	err := RenderVerdictTable(&buf, []domain.SuspectVerdict{
		{
			Suspect: "corrupt-render-dll",
			Match:   domain.SignalMatchResult{IsMatch: true, Confidence: 1},
			Assessment: domain.SeverityAssessment{
				FinalLevel:   domain.SeverityCritical,
				Score:        1,
				WasEscalated: true,
			},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "corrupt-render-dll")
	assert.Contains(t, out, "Critical")
	assert.Contains(t, strings.ToUpper(out), "SUSPECT")
}
