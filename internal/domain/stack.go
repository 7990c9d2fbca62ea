package domain

// StackFrame is one parsed call-stack line. Raw always holds the original
// line so fallback matching can work on irregular formats.
type StackFrame struct {
	Index    int    `json:"index"`
	Address  string `json:"address,omitempty"`
	Module   string `json:"module,omitempty"`
	Function string `json:"function,omitempty"`
	Offset   string `json:"offset,omitempty"`
	Raw      string `json:"raw"`
}

// PatternCluster is a locally-contiguous run of frames (gap <= 2 between
// consecutive members, size >= 2) from the same module.
type PatternCluster struct {
	Module  string `json:"module"`
	Indices []int  `json:"indices"`
	Size    int    `json:"size"`
}

// DepthStatistics summarizes the depth distribution of a call stack.
type DepthStatistics struct {
	MaxDepth           int                `json:"max_depth"`
	CriticalDepth      int                `json:"critical_depth"`
	ModuleAverageDepth map[string]float64 `json:"module_average_depth,omitempty"`
}

// PatternMatch is one frame hit for a caller-supplied pattern.
type PatternMatch struct {
	Pattern    string `json:"pattern"`
	FrameIndex int    `json:"frame_index"`
	Module     string `json:"module,omitempty"`
	Function   string `json:"function,omitempty"`
}

// PatternStatistics is the deep-dive result for a single pattern.
type PatternStatistics struct {
	Pattern     string `json:"pattern"`
	Occurrences int    `json:"occurrences"`
	FirstDepth  int    `json:"first_depth"`
	LastDepth   int    `json:"last_depth"`

	AverageDepth float64 `json:"average_depth"`

	// ClusteringCoefficient is 1/(1+meanGap) over consecutive occurrences,
	// 0 when there are fewer than 2 occurrences.
	ClusteringCoefficient float64 `json:"clustering_coefficient"`
}

// CallStackAnalysis is the full structural analysis of one call stack.
type CallStackAnalysis struct {
	IsValid     bool         `json:"is_valid"`
	TotalFrames int          `json:"total_frames"`
	Frames      []StackFrame `json:"frames,omitempty"`

	// ModuleCounts keys are lowercased module names.
	ModuleCounts map[string]int `json:"module_counts,omitempty"`

	RecursionDetected bool             `json:"recursion_detected"`
	Clusters          []PatternCluster `json:"clusters,omitempty"`
	Depth             DepthStatistics  `json:"depth"`

	// Populated only when the caller supplied a pattern list.
	PatternMatches []PatternMatch   `json:"pattern_matches,omitempty"`
	PatternDepths  map[string][]int `json:"pattern_depths,omitempty"`

	ProblemIndicators []string `json:"problem_indicators,omitempty"`
}
