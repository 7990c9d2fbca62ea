package engine

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/crashlens/crashlens/internal/callstack"
	"github.com/crashlens/crashlens/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testReport = domain.CrashReport{
	MainError: "AccessViolation at 0x1",
	CallStack: "[0] 0x1 bad.dll+0x1\n[1] 0x2 bad.dll+0x2\n[2] 0x3 bad.dll+0x3\n[3] 0x4 bad.dll+0x4\n[4] 0x5 game.exe+0x5",
}

var testSuspects = []domain.Suspect{
	{
		Name:    "corrupt-render-dll",
		Tier:    5,
		Signals: []string{"NOT|safe_mode", "ME-REQ|AccessViolation", "3|bad.dll"},
		Factors: &domain.SeverityFactors{IsDLLCrash: true},
	},
	{
		Name:    "audio-driver",
		Tier:    3,
		Signals: []string{"ME-REQ|AudioDeviceLost"},
	},
	{
		Name:    "generic-stack-spam",
		Tier:    2,
		Signals: []string{"2|bad.dll"},
	},
}

func TestEngine_Diagnose(t *testing.T) {
	e := New()

	diagnosis, err := e.Diagnose(context.Background(), testReport, testSuspects, nil)
	require.NoError(t, err)
	require.Len(t, diagnosis.Verdicts, 3)

	t.Run("verdicts ordered by score descending", func(t *testing.T) {
		assert.Equal(t, "corrupt-render-dll", diagnosis.Verdicts[0].Suspect)
		for i := 1; i < len(diagnosis.Verdicts); i++ {
			assert.GreaterOrEqual(t,
				diagnosis.Verdicts[i-1].Assessment.Score,
				diagnosis.Verdicts[i].Assessment.Score)
		}
	})

	t.Run("non-matching suspect scores zero", func(t *testing.T) {
		var audio *domain.SuspectVerdict
		for i := range diagnosis.Verdicts {
			if diagnosis.Verdicts[i].Suspect == "audio-driver" {
				audio = &diagnosis.Verdicts[i]
			}
		}
		require.NotNil(t, audio)
		assert.False(t, audio.Match.IsMatch)
		assert.Zero(t, audio.Assessment.Score)
		assert.Equal(t, domain.SeverityNone, audio.Assessment.FinalLevel)
	})

	t.Run("combined covers only matching suspects", func(t *testing.T) {
		assert.Equal(t, 2, diagnosis.MatchCount())
		assert.Contains(t, diagnosis.Combined.Explanations, "combined verdict across 2 suspects")
		assert.GreaterOrEqual(t, diagnosis.Combined.Score, diagnosis.Verdicts[0].Assessment.Score)
	})

	t.Run("stack analysis attached", func(t *testing.T) {
		assert.True(t, diagnosis.Stack.IsValid)
		assert.Equal(t, 5, diagnosis.Stack.TotalFrames)
		assert.Equal(t, 4, diagnosis.Stack.ModuleCounts["bad.dll"])
	})
}

func TestEngine_EmptyCatalogue(t *testing.T) {
	e := New()

	diagnosis, err := e.Diagnose(context.Background(), testReport, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, diagnosis.Verdicts)
	assert.Equal(t, domain.SeverityNone, diagnosis.Combined.FinalLevel)
	assert.Zero(t, diagnosis.Combined.Score)
}

func TestEngine_EmptyReport(t *testing.T) {
	e := New()

	diagnosis, err := e.Diagnose(context.Background(), domain.CrashReport{}, testSuspects, nil)
	require.NoError(t, err)
	assert.False(t, diagnosis.Stack.IsValid)
	assert.Zero(t, diagnosis.MatchCount())
}

func TestEngine_CancelledContext(t *testing.T) {
	e := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Diagnose(ctx, testReport, testSuspects, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_InjectedClockAndAnalyzer(t *testing.T) {
	mock := clock.NewMock()
	analyzer := callstack.NewAnalyzerWithModules([]string{"bad.dll"})
	e := New(WithClock(mock), WithAnalyzer(analyzer))

	diagnosis, err := e.Diagnose(context.Background(), testReport, testSuspects, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), diagnosis.Duration)
	assert.Contains(t, diagnosis.Stack.ProblemIndicators,
		"problematic module bad.dll forms a cluster of 4 frames")
}

func TestEngine_Deterministic(t *testing.T) {
	e := New(WithClock(clock.NewMock()))

	first, err := e.Diagnose(context.Background(), testReport, testSuspects, []string{"bad.dll"})
	require.NoError(t, err)
	second, err := e.Diagnose(context.Background(), testReport, testSuspects, []string{"bad.dll"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
