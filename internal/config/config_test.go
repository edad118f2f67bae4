package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsBadFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Model = ""
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Adaptive = true
	cfg.Tolerance = 0
	require.Error(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Model = "lorenz"
	cfg.Method = "dopri5"
	cfg.Adaptive = true
	cfg.Tolerance = 1e-9
	cfg.InitState = []float64{1, 1, 1}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "model: decay\nmethod: euler\ndt: 0.5\nduration: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.5, loaded.Dt)
	require.Equal(t, DefaultTol, loaded.Tolerance, "unset fields keep defaults")
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, Save(path, &Config{Model: "decay", Method: "euler", Dt: -1, Duration: 2}))

	_, err := Load(path)
	require.Error(t, err)
}

func TestPresetsAreValid(t *testing.T) {
	for model, group := range Presets {
		for name, preset := range group {
			require.NoError(t, preset.Validate(), "%s/%s", model, name)
			require.Equal(t, model, preset.Model, "%s/%s", model, name)
		}
	}
	require.NotNil(t, LookupPreset("lorenz", "butterfly"))
	require.Nil(t, LookupPreset("lorenz", "missing"))
	require.Nil(t, LookupPreset("missing", "x"))
}
