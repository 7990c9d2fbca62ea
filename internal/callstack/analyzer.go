package callstack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crashlens/crashlens/internal/domain"
)

// Modules that are known crash culprits when they dominate a cluster.
// Overridable via NewAnalyzerWithModules so catalogues can evolve without a
// rebuild.
var defaultProblemModules = []string{
	"nvwgf2umx.dll",
	"atio6axx.dll",
	"d3d11.dll",
	"kernelbase.dll",
}

// DefaultProblemModules returns a copy of the built-in known-problem set.
func DefaultProblemModules() []string {
	out := make([]string, len(defaultProblemModules))
	copy(out, defaultProblemModules)
	return out
}

// Analysis thresholds.
const (
	clusterMaxGap       = 2
	clusterMinSize      = 2
	recursionNameLimit  = 3
	deepStackFrames     = 100
	criticalDepthRatio  = 0.3
	problemClusterSize  = 3
	dominantModuleShare = 0.6
)

// Analyzer derives structural diagnostics from raw call-stack text. It is
// stateless after construction and safe for concurrent use.
type Analyzer struct {
	parser         *Parser
	problemModules []string
}

// NewAnalyzer creates an analyzer with the default known-problem module set.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithModules(defaultProblemModules)
}

// NewAnalyzerWithModules creates an analyzer with an injected known-problem
// module set. Matching against the set is case-insensitive substring.
func NewAnalyzerWithModules(modules []string) *Analyzer {
	lowered := make([]string, 0, len(modules))
	for _, m := range modules {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			lowered = append(lowered, m)
		}
	}
	return &Analyzer{parser: NewParser(), problemModules: lowered}
}

// Analyze parses the call stack and computes all derived analyses. Blank
// input yields an invalid analysis with nothing computed. patterns is
// optional; when supplied, per-pattern frame matches and depths are added.
func (a *Analyzer) Analyze(callStack string, patterns []string) domain.CallStackAnalysis {
	if strings.TrimSpace(callStack) == "" {
		return domain.CallStackAnalysis{}
	}

	frames := a.parser.Parse(callStack)
	analysis := domain.CallStackAnalysis{
		IsValid:      true,
		TotalFrames:  len(frames),
		Frames:       frames,
		ModuleCounts: moduleCounts(frames),
	}

	analysis.RecursionDetected = detectRecursion(frames)
	analysis.Clusters = findClusters(frames)
	analysis.Depth = depthStatistics(frames)

	if patterns != nil {
		analysis.PatternMatches, analysis.PatternDepths = matchPatterns(frames, patterns)
	}

	analysis.ProblemIndicators = a.problemIndicators(analysis)
	return analysis
}

func moduleCounts(frames []domain.StackFrame) map[string]int {
	counts := make(map[string]int)
	for _, f := range frames {
		if f.Module == "" {
			continue
		}
		counts[strings.ToLower(f.Module)]++
	}
	return counts
}

// detectRecursion flags a stack when any function name appears more than
// three times anywhere, or two adjacent frames share a function name.
func detectRecursion(frames []domain.StackFrame) bool {
	counts := make(map[string]int)
	prev := ""
	for _, f := range frames {
		name := strings.ToLower(f.Function)
		if name == "" {
			prev = ""
			continue
		}
		counts[name]++
		if counts[name] > recursionNameLimit {
			return true
		}
		if name == prev {
			return true
		}
		prev = name
	}
	return false
}

// findClusters groups each module's frame indices into locally-contiguous
// runs (gap <= 2) and keeps runs of at least two frames. Clusters are
// ordered by first index, then module name, so output is deterministic.
func findClusters(frames []domain.StackFrame) []domain.PatternCluster {
	indices := make(map[string][]int)
	for _, f := range frames {
		if f.Module == "" {
			continue
		}
		key := strings.ToLower(f.Module)
		indices[key] = append(indices[key], f.Index)
	}

	modules := make([]string, 0, len(indices))
	for m := range indices {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	var clusters []domain.PatternCluster
	for _, module := range modules {
		run := []int{indices[module][0]}
		flush := func() {
			if len(run) >= clusterMinSize {
				clusters = append(clusters, domain.PatternCluster{
					Module:  module,
					Indices: run,
					Size:    len(run),
				})
			}
		}
		for _, idx := range indices[module][1:] {
			if idx-run[len(run)-1] <= clusterMaxGap {
				run = append(run, idx)
				continue
			}
			flush()
			run = []int{idx}
		}
		flush()
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Indices[0] != clusters[j].Indices[0] {
			return clusters[i].Indices[0] < clusters[j].Indices[0]
		}
		return clusters[i].Module < clusters[j].Module
	})
	return clusters
}

func depthStatistics(frames []domain.StackFrame) domain.DepthStatistics {
	stats := domain.DepthStatistics{
		MaxDepth:      len(frames),
		CriticalDepth: int(float64(len(frames)) * criticalDepthRatio),
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, f := range frames {
		if f.Module == "" {
			continue
		}
		key := strings.ToLower(f.Module)
		sums[key] += f.Index
		counts[key]++
	}
	if len(counts) > 0 {
		stats.ModuleAverageDepth = make(map[string]float64, len(counts))
		for module, n := range counts {
			stats.ModuleAverageDepth[module] = float64(sums[module]) / float64(n)
		}
	}
	return stats
}

func matchPatterns(frames []domain.StackFrame, patterns []string) ([]domain.PatternMatch, map[string][]int) {
	var matches []domain.PatternMatch
	depths := make(map[string][]int)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		for _, f := range frames {
			if !frameContains(f, pattern) {
				continue
			}
			matches = append(matches, domain.PatternMatch{
				Pattern:    pattern,
				FrameIndex: f.Index,
				Module:     f.Module,
				Function:   f.Function,
			})
			depths[pattern] = append(depths[pattern], f.Index)
		}
	}
	return matches, depths
}

// frameContains matches a pattern against module, function, and the raw
// line, case-insensitively.
func frameContains(f domain.StackFrame, pattern string) bool {
	haystack := strings.ToLower(f.Module + " " + f.Function + " " + f.Raw)
	return strings.Contains(haystack, strings.ToLower(pattern))
}

func (a *Analyzer) problemIndicators(analysis domain.CallStackAnalysis) []string {
	var indicators []string

	if analysis.RecursionDetected {
		indicators = append(indicators, "recursive call pattern detected")
	}
	if analysis.TotalFrames > deepStackFrames {
		indicators = append(indicators,
			fmt.Sprintf("very deep call stack (%d frames)", analysis.TotalFrames))
	}

	for _, cluster := range analysis.Clusters {
		if cluster.Size <= problemClusterSize {
			continue
		}
		if a.isProblemModule(cluster.Module) {
			indicators = append(indicators,
				fmt.Sprintf("problematic module %s forms a cluster of %d frames", cluster.Module, cluster.Size))
		}
	}

	if module, count, total, ok := dominantModule(analysis.ModuleCounts); ok {
		indicators = append(indicators,
			fmt.Sprintf("stack dominated by %s (%d of %d module frames)", module, count, total))
	}
	return indicators
}

func (a *Analyzer) isProblemModule(module string) bool {
	module = strings.ToLower(module)
	for _, known := range a.problemModules {
		if strings.Contains(module, known) {
			return true
		}
	}
	return false
}

// dominantModule reports the single largest module when it exceeds 60% of
// all module occurrences. Ties are broken by name for determinism.
func dominantModule(counts map[string]int) (string, int, int, bool) {
	total := 0
	best, bestCount := "", 0
	for module, count := range counts {
		total += count
		if count > bestCount || (count == bestCount && module < best) {
			best, bestCount = module, count
		}
	}
	if total == 0 || float64(bestCount) <= dominantModuleShare*float64(total) {
		return "", 0, 0, false
	}
	return best, bestCount, total, true
}
