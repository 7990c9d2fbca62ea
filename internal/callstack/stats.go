package callstack

import "github.com/crashlens/crashlens/internal/domain"

// ContainsSequence reports whether the frames contain every pattern in
// order. Coverage does not have to be contiguous: the scan advances a
// cursor through the pattern list whenever the current frame matches the
// pattern the cursor points at, and succeeds only if the cursor reaches the
// end.
func ContainsSequence(frames []domain.StackFrame, patterns []string) bool {
	cursor := 0
	for _, f := range frames {
		if cursor >= len(patterns) {
			break
		}
		if frameContains(f, patterns[cursor]) {
			cursor++
		}
	}
	return cursor >= len(patterns)
}

// PatternStats computes occurrence statistics for one pattern over an
// already-parsed frame sequence. The clustering coefficient is
// 1/(1+meanGap) over consecutive occurrence depths and 0 when the pattern
// occurs fewer than twice.
func PatternStats(frames []domain.StackFrame, pattern string) domain.PatternStatistics {
	stats := domain.PatternStatistics{Pattern: pattern}

	var depths []int
	for _, f := range frames {
		if frameContains(f, pattern) {
			depths = append(depths, f.Index)
		}
	}
	if len(depths) == 0 {
		return stats
	}

	stats.Occurrences = len(depths)
	stats.FirstDepth = depths[0]
	stats.LastDepth = depths[len(depths)-1]

	sum := 0
	for _, d := range depths {
		sum += d
	}
	stats.AverageDepth = float64(sum) / float64(len(depths))

	if len(depths) >= 2 {
		gapSum := 0
		for i := 1; i < len(depths); i++ {
			gapSum += depths[i] - depths[i-1]
		}
		meanGap := float64(gapSum) / float64(len(depths)-1)
		stats.ClusteringCoefficient = 1 / (1 + meanGap)
	}
	return stats
}
