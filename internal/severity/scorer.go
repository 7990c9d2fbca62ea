// Package severity converts match results into scored verdicts.
package severity

import (
	"fmt"
	"math"

	"github.com/crashlens/crashlens/internal/domain"
)

// Scorer computes severity assessments. It is stateless and safe for
// concurrent use.
type Scorer struct{}

// NewScorer creates a new severity scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Scoring model weights.
const (
	confidenceWeight = 0.3

	requiredRatioWeight = 0.15
	extraSignalWeight   = 0.05
	heavySignalWeight   = 0.03

	extraSignalFloor = 3
	extraSignalCap   = 3
	heavyOccurrences = 5

	boostDLLCrash           = 0.10
	boostRecurring          = 0.15
	boostMultipleIndicators = 0.10
	boostKnownCritical      = 0.20
	boostAffectsStability   = 0.15
)

// Calculate scores one suspect. tier is the catalogue base severity (1-6).
// A nil or non-matching result yields level None with score 0; the base
// level is still mapped from the tier.
func (s *Scorer) Calculate(tier int, result *domain.SignalMatchResult, factors *domain.SeverityFactors) domain.SeverityAssessment {
	assessment := domain.SeverityAssessment{
		BaseTier:  tier,
		BaseLevel: domain.SeverityFromTier(tier),
	}

	if result == nil || !result.IsMatch {
		return assessment
	}

	score := float64(tier) / 6.0
	score += result.Confidence * confidenceWeight
	score += signalWeight(result)
	score += factorBoost(factors)

	assessment.Score = math.Min(1.0, score)
	assessment.FinalLevel = domain.SeverityFromScore(assessment.Score)
	assessment.Explanations = explanations(result, factors)

	if shouldEscalate(result, factors) {
		assessment.FinalLevel = assessment.FinalLevel.Next()
		assessment.WasEscalated = true
		assessment.Explanations = append(assessment.Explanations, "severity escalated one level")
	}

	return assessment
}

func signalWeight(r *domain.SignalMatchResult) float64 {
	var w float64
	if r.RequiredTotal > 0 {
		w += requiredRatioWeight * float64(r.RequiredMatches) / float64(r.RequiredTotal)
	}

	total := r.MatchedSignals()
	if total > extraSignalFloor {
		extra := total - extraSignalFloor
		if extra > extraSignalCap {
			extra = extraSignalCap
		}
		w += extraSignalWeight * float64(extra)
	}

	heavy := 0
	for _, m := range r.Matches {
		if m.Occurrences > heavyOccurrences {
			heavy++
		}
	}
	w += heavySignalWeight * float64(heavy)
	return w
}

func factorBoost(f *domain.SeverityFactors) float64 {
	if f == nil {
		return 0
	}
	var boost float64
	if f.IsDLLCrash {
		boost += boostDLLCrash
	}
	if f.IsRecurring {
		boost += boostRecurring
	}
	if f.HasMultipleIndicators {
		boost += boostMultipleIndicators
	}
	if f.IsKnownCriticalPattern {
		boost += boostKnownCritical
	}
	if f.AffectsGameStability {
		boost += boostAffectsStability
	}
	return boost
}

func explanations(r *domain.SignalMatchResult, f *domain.SeverityFactors) []string {
	var out []string
	if allRequiredMatched(r) {
		out = append(out, fmt.Sprintf("all %d required signals matched", r.RequiredTotal))
	}
	if r.Confidence > 0.8 {
		out = append(out, fmt.Sprintf("high match confidence (%.2f)", r.Confidence))
	}
	if f == nil {
		return out
	}
	if f.IsDLLCrash {
		out = append(out, "crash originates in a DLL")
	}
	if f.IsRecurring {
		out = append(out, "crash is recurring")
	}
	if f.HasMultipleIndicators {
		out = append(out, "multiple independent indicators present")
	}
	if f.IsKnownCriticalPattern {
		out = append(out, "matches a known critical pattern")
	}
	if f.AffectsGameStability {
		out = append(out, "affects game stability")
	}
	return out
}

func allRequiredMatched(r *domain.SignalMatchResult) bool {
	return r.RequiredTotal > 0 && r.RequiredMatches == r.RequiredTotal
}

func shouldEscalate(r *domain.SignalMatchResult, f *domain.SeverityFactors) bool {
	if allRequiredMatched(r) && r.Confidence > 0.9 {
		return true
	}
	if f == nil {
		return false
	}
	if f.IsKnownCriticalPattern {
		return true
	}
	return f.IsRecurring && f.AffectsGameStability
}
