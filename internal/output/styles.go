package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/crashlens/crashlens/internal/domain"
)

// Styles holds all lipgloss styles for text output.
var Styles = struct {
	// Severity styles
	None     lipgloss.Style
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Critical lipgloss.Style

	// Component styles
	Header    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Indicator lipgloss.Style
	Muted     lipgloss.Style
}{
	None:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),                            // Gray
	Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),                             // Cyan
	Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),                 // Orange
	Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),                 // Red bold
	Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Underline(true), // Magenta bold underline

	Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:     lipgloss.NewStyle().Bold(true),
	Indicator: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
}

// SeverityStyle returns the style for a severity level.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityInfo:
		return Styles.Info
	case domain.SeverityWarning:
		return Styles.Warning
	case domain.SeverityError:
		return Styles.Error
	case domain.SeverityCritical:
		return Styles.Critical
	default:
		return Styles.None
	}
}
