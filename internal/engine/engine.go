// Package engine orchestrates the matcher, scorer, and call-stack analyzer
// over a suspect catalogue. The three components never call each other;
// composition happens here.
package engine

import (
	"context"
	"sort"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/crashlens/crashlens/internal/callstack"
	"github.com/crashlens/crashlens/internal/domain"
	"github.com/crashlens/crashlens/internal/match"
	"github.com/crashlens/crashlens/internal/severity"
)

// Engine evaluates crash reports against a suspect catalogue. It holds no
// mutable state; a single Engine may serve concurrent callers.
type Engine struct {
	matcher  *match.Matcher
	scorer   *severity.Scorer
	analyzer *callstack.Analyzer
	clock    clock.Clock
	log      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithAnalyzer replaces the default call-stack analyzer, typically to
// inject a custom known-problem module set.
func WithAnalyzer(a *callstack.Analyzer) Option {
	return func(e *Engine) { e.analyzer = a }
}

// WithClock injects a clock for deterministic durations in tests.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger injects a logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine with default components.
func New(opts ...Option) *Engine {
	e := &Engine{
		matcher:  match.NewMatcher(),
		scorer:   severity.NewScorer(),
		analyzer: callstack.NewAnalyzer(),
		clock:    clock.New(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Diagnose evaluates every suspect against the report in parallel, analyzes
// the call stack once, and combines the assessments of matching suspects
// into one aggregate verdict. stackPatterns is optional and forwarded to
// the analyzer. The only error source is context cancellation.
func (e *Engine) Diagnose(ctx context.Context, report domain.CrashReport, suspects []domain.Suspect, stackPatterns []string) (*domain.Diagnosis, error) {
	start := e.clock.Now()

	verdicts := make([]domain.SuspectVerdict, len(suspects))
	group, ctx := errgroup.WithContext(ctx)
	for i, suspect := range suspects {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			verdicts[i] = e.evaluate(suspect, report)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Highest score first; name breaks ties so output is stable.
	sort.SliceStable(verdicts, func(i, j int) bool {
		if verdicts[i].Assessment.Score != verdicts[j].Assessment.Score {
			return verdicts[i].Assessment.Score > verdicts[j].Assessment.Score
		}
		return verdicts[i].Suspect < verdicts[j].Suspect
	})

	var matching []domain.SeverityAssessment
	for _, v := range verdicts {
		if v.Match.IsMatch {
			matching = append(matching, v.Assessment)
		}
	}

	diagnosis := &domain.Diagnosis{
		Verdicts: verdicts,
		Combined: e.scorer.Combine(matching),
		Stack:    e.analyzer.Analyze(report.CallStack, stackPatterns),
		Duration: e.clock.Since(start),
	}

	e.log.Debug("diagnosis complete",
		zap.Int("suspects", len(suspects)),
		zap.Int("matches", len(matching)),
		zap.String("verdict", diagnosis.Combined.FinalLevel.String()),
		zap.Duration("duration", diagnosis.Duration))
	return diagnosis, nil
}

func (e *Engine) evaluate(suspect domain.Suspect, report domain.CrashReport) domain.SuspectVerdict {
	result := e.matcher.Process(suspect.Signals, report.MainError, report.CallStack)
	assessment := e.scorer.Calculate(suspect.Tier, &result, suspect.Factors)

	e.log.Debug("suspect evaluated",
		zap.String("suspect", suspect.Name),
		zap.Bool("match", result.IsMatch),
		zap.Float64("confidence", result.Confidence),
		zap.Float64("score", assessment.Score))

	return domain.SuspectVerdict{
		Suspect:    suspect.Name,
		Match:      result,
		Assessment: assessment,
	}
}
