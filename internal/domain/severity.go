package domain

// Severity is the five-level verdict ladder.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

// String returns the display name of a severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "Info"
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	case SeverityCritical:
		return "Critical"
	default:
		return "None"
	}
}

// Next returns the level one step above s, capped at Critical.
func (s Severity) Next() Severity {
	if s >= SeverityCritical {
		return SeverityCritical
	}
	return s + 1
}

// MarshalText encodes the severity as its display name for JSON/YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity from its display name.
func (s *Severity) UnmarshalText(text []byte) error {
	*s = ParseSeverity(string(text))
	return nil
}

// ParseSeverity converts a string to a Severity. Unknown values map to None.
func ParseSeverity(v string) Severity {
	switch v {
	case "Info", "info":
		return SeverityInfo
	case "Warning", "warning":
		return SeverityWarning
	case "Error", "error":
		return SeverityError
	case "Critical", "critical":
		return SeverityCritical
	default:
		return SeverityNone
	}
}

// SeverityFromTier maps a base severity tier (1-6) to a level.
func SeverityFromTier(tier int) Severity {
	switch {
	case tier >= 5:
		return SeverityCritical
	case tier >= 4:
		return SeverityError
	case tier >= 3:
		return SeverityWarning
	case tier >= 1:
		return SeverityInfo
	default:
		return SeverityNone
	}
}

// SeverityFromScore maps a final score in [0,1] to a level.
func SeverityFromScore(score float64) Severity {
	switch {
	case score >= 0.8:
		return SeverityCritical
	case score >= 0.6:
		return SeverityError
	case score >= 0.3:
		return SeverityWarning
	case score >= 0.1:
		return SeverityInfo
	default:
		return SeverityNone
	}
}
