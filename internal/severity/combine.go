package severity

import (
	"fmt"
	"math"
	"slices"

	"github.com/crashlens/crashlens/internal/domain"
)

// Diminishing boost schedule for combining multiple matching suspects.
const (
	combineBoostBase = 0.05
	combineBoostCap  = 4
)

// Combine merges several suspect assessments into one aggregate verdict.
// The highest-scoring assessment is the base; each additional assessment
// adds a diminishing boost. The combined level never drops below the base
// level and is forced up when multiple inputs are already severe.
func (s *Scorer) Combine(assessments []domain.SeverityAssessment) domain.SeverityAssessment {
	if len(assessments) == 0 {
		return domain.SeverityAssessment{}
	}

	best := assessments[0]
	for _, a := range assessments[1:] {
		if a.Score > best.Score {
			best = a
		}
	}

	combined := best
	combined.Explanations = slices.Clone(best.Explanations)

	extra := len(assessments) - 1
	if extra > combineBoostCap {
		extra = combineBoostCap
	}
	var boost float64
	for i := 1; i <= extra; i++ {
		boost += combineBoostBase / float64(i)
	}

	combined.Score = math.Min(1.0, best.Score+boost)
	combined.FinalLevel = domain.SeverityFromScore(combined.Score)
	if combined.FinalLevel < best.FinalLevel {
		combined.FinalLevel = best.FinalLevel
	}

	criticals, errors := 0, 0
	for _, a := range assessments {
		switch a.FinalLevel {
		case domain.SeverityCritical:
			criticals++
		case domain.SeverityError:
			errors++
		}
	}
	if criticals > 1 {
		combined.FinalLevel = domain.SeverityCritical
	} else if errors > 2 && combined.FinalLevel < domain.SeverityError {
		combined.FinalLevel = domain.SeverityError
	}

	combined.Explanations = append(combined.Explanations,
		fmt.Sprintf("combined verdict across %d suspects", len(assessments)))
	return combined
}
