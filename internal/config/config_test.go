package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/kmlgeom/internal/kml"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, kml.DefaultPrecision, cfg.PrecisionOrDefault())
	assert.Equal(t, kml.Normal, cfg.VerbosityLevel())
	assert.True(t, cfg.Hints().IsZero())
	assert.False(t, cfg.Strict)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
precision: 3
verbosity: verbose
namespace: kml
strict: true
minify: true
defaults:
  extrude: true
  altitude_mode: absolute
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.PrecisionOrDefault())
	assert.Equal(t, kml.Verbose, cfg.VerbosityLevel())
	assert.Equal(t, "kml", cfg.Namespace)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Minify)

	h := cfg.Hints()
	require.NotNil(t, h.Extrude)
	assert.True(t, *h.Extrude)
	assert.Nil(t, h.Tessellate)
	require.NotNil(t, h.AltitudeMode)
	assert.Equal(t, kml.Absolute, *h.AltitudeMode)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "strict: true\n"))
	require.NoError(t, err)
	assert.Equal(t, kml.DefaultPrecision, cfg.PrecisionOrDefault())
	assert.Equal(t, "normal", cfg.Verbosity)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "precision: [1"))
	assert.Error(t, err)
}

func TestValidateCollectsProblems(t *testing.T) {
	precision := -1
	cfg := &Config{
		Precision: &precision,
		Verbosity: "chatty",
		Namespace: "kml:x",
		Defaults:  Defaults{AltitudeMode: "sideways"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	for _, part := range []string{"precision", "chatty", "namespace", "sideways"} {
		assert.Contains(t, err.Error(), part)
	}
	assert.Equal(t, kml.Normal, cfg.VerbosityLevel())
}

func TestValidatePrecisionRange(t *testing.T) {
	precision := kml.MaxPrecision
	cfg := Default()
	cfg.Precision = &precision
	require.NoError(t, cfg.Validate())

	precision = kml.MaxPrecision + 1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precision 18 exceeds 17")

	_, err = Load(writeConfig(t, "precision: 2000000\n"))
	assert.Error(t, err)
}
