// Package config loads tool configuration and the suspect catalogue.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/crashlens/crashlens/internal/domain"
)

// Config holds application configuration plus the rule catalogue.
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// ProblemModules overrides the analyzer's known-problem module set.
	// Empty means use the built-in default.
	ProblemModules []string `mapstructure:"problem_modules"`

	// Suspects is the known-issue catalogue evaluated on every diagnosis.
	Suspects []SuspectConfig `mapstructure:"suspects"`
}

// SuspectConfig is one catalogue entry as stored in YAML.
type SuspectConfig struct {
	Name     string         `mapstructure:"name"`
	Severity int            `mapstructure:"severity"`
	Signals  []string       `mapstructure:"signals"`
	Factors  *FactorsConfig `mapstructure:"factors"`
}

// FactorsConfig mirrors domain.SeverityFactors in YAML form.
type FactorsConfig struct {
	DLLCrash             bool     `mapstructure:"dll_crash"`
	Recurring            bool     `mapstructure:"recurring"`
	MultipleIndicators   bool     `mapstructure:"multiple_indicators"`
	KnownCriticalPattern bool     `mapstructure:"known_critical_pattern"`
	AffectsStability     bool     `mapstructure:"affects_stability"`
	CrashFrequency       int      `mapstructure:"crash_frequency"`
	RelatedMods          []string `mapstructure:"related_mods"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Format: "auto",
	}
}

// Load loads configuration from files and environment.
// Config file search order (highest precedence first):
// 1. ./.crashlens.yaml or ./.crashlens.yml
// 2. ~/.crashlens.yaml or ~/.crashlens.yml
// 3. $XDG_CONFIG_HOME/crashlens/config.yaml (or ~/.config/crashlens/config.yaml)
// 4. /etc/crashlens/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// findConfigFile searches for a config file in standard locations.
func findConfigFile() string {
	names := []string{".crashlens.yaml", ".crashlens.yml", "crashlens.yaml", "crashlens.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "crashlens"))
	}
	searchPaths = append(searchPaths, "/etc/crashlens")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CRASHLENS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CRASHLENS_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("CRASHLENS_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
}

// DomainSuspects converts catalogue entries to engine inputs. Severity
// tiers are clamped to the 1-6 domain.
func (c *Config) DomainSuspects() []domain.Suspect {
	suspects := make([]domain.Suspect, 0, len(c.Suspects))
	for _, sc := range c.Suspects {
		suspects = append(suspects, sc.domain())
	}
	return suspects
}

func (sc SuspectConfig) domain() domain.Suspect {
	tier := sc.Severity
	if tier < 1 {
		tier = 1
	}
	if tier > 6 {
		tier = 6
	}

	s := domain.Suspect{
		Name:    sc.Name,
		Tier:    tier,
		Signals: sc.Signals,
	}
	if sc.Factors != nil {
		s.Factors = &domain.SeverityFactors{
			IsDLLCrash:             sc.Factors.DLLCrash,
			IsRecurring:            sc.Factors.Recurring,
			HasMultipleIndicators:  sc.Factors.MultipleIndicators,
			IsKnownCriticalPattern: sc.Factors.KnownCriticalPattern,
			AffectsGameStability:   sc.Factors.AffectsStability,
			CrashFrequency:         sc.Factors.CrashFrequency,
			RelatedMods:            sc.Factors.RelatedMods,
		}
	}
	return s
}
