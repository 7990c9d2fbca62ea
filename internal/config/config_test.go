package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crashlens/crashlens/internal/domain"
)

const testCatalogue = `
format: ndjson
verbose: true
problem_modules:
  - modloader.dll
  - d3d11.dll
suspects:
  - name: corrupt-render-dll
    severity: 5
    signals:
      - "NOT|safe_mode"
      - "ME-REQ|AccessViolation"
      - "3|bad.dll"
    factors:
      dll_crash: true
      known_critical_pattern: true
      related_mods:
        - EnhancedShaders
  - name: out-of-range-tier
    severity: 9
    signals:
      - "ME-OPT|oom"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".crashlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, testCatalogue))
	require.NoError(t, err)

	assert.Equal(t, "ndjson", cfg.Format)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"modloader.dll", "d3d11.dll"}, cfg.ProblemModules)
	require.Len(t, cfg.Suspects, 2)
	assert.Equal(t, "corrupt-render-dll", cfg.Suspects[0].Name)
	assert.Equal(t, 5, cfg.Suspects[0].Severity)
	require.NotNil(t, cfg.Suspects[0].Factors)
	assert.True(t, cfg.Suspects[0].Factors.KnownCriticalPattern)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDomainSuspects(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, testCatalogue))
	require.NoError(t, err)

	suspects := cfg.DomainSuspects()
	require.Len(t, suspects, 2)

	t.Run("factors carried over", func(t *testing.T) {
		require.NotNil(t, suspects[0].Factors)
		assert.Equal(t, &domain.SeverityFactors{
			IsDLLCrash:             true,
			IsKnownCriticalPattern: true,
			RelatedMods:            []string{"EnhancedShaders"},
		}, suspects[0].Factors)
	})

	t.Run("tier clamped to domain", func(t *testing.T) {
		assert.Equal(t, 6, suspects[1].Tier)
		assert.Nil(t, suspects[1].Factors)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "auto", cfg.Format)
	assert.Empty(t, cfg.Suspects)
	assert.Empty(t, cfg.ProblemModules)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CRASHLENS_FORMAT", "text")
	t.Setenv("CRASHLENS_QUIET", "1")

	cfg := Default()
	applyEnvOverrides(cfg)

	assert.Equal(t, "text", cfg.Format)
	assert.True(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
}
