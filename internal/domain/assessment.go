package domain

// SeverityFactors are caller-supplied qualitative inputs to scoring. All
// fields are optional and purely additive.
type SeverityFactors struct {
	IsDLLCrash             bool     `json:"is_dll_crash,omitempty"`
	IsRecurring            bool     `json:"is_recurring,omitempty"`
	HasMultipleIndicators  bool     `json:"has_multiple_indicators,omitempty"`
	IsKnownCriticalPattern bool     `json:"is_known_critical_pattern,omitempty"`
	AffectsGameStability   bool     `json:"affects_game_stability,omitempty"`
	CrashFrequency         int      `json:"crash_frequency,omitempty"`
	RelatedMods            []string `json:"related_mods,omitempty"`
}

// SeverityAssessment is the scored verdict for one suspect.
type SeverityAssessment struct {
	BaseTier   int      `json:"base_tier"`
	BaseLevel  Severity `json:"base_level"`
	FinalLevel Severity `json:"final_level"`

	// Score is in [0,1], clamped with min(1.0, ...), never re-normalized.
	Score float64 `json:"score"`

	WasEscalated bool     `json:"was_escalated,omitempty"`
	Explanations []string `json:"explanations,omitempty"`
}
