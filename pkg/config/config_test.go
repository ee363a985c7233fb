package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropsim/dropctl/pkg/catalog"
	"github.com/dropsim/dropctl/pkg/scoring"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 25, cfg.Simulation.Orders)
}

func TestLoadParsesProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
db: /tmp/test.db
webhook:
  url: https://hooks.example.com/orders
profiles:
  product:
    weights:
      trend_velocity: 0.30
    thresholds:
      - min: 90
        label: S
      - min: 0
        label: F
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DB)
	assert.Equal(t, "https://hooks.example.com/orders", cfg.Webhook.URL)
	require.Contains(t, cfg.Profiles, "product")
	assert.Equal(t, 0.30, cfg.Profiles["product"].Weights["trend_velocity"])
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: /tmp/file.db\n"), 0600))

	t.Setenv("DROPCTL_DB", "/tmp/env.db")
	t.Setenv("DROPCTL_WEBHOOK_URL", "https://env.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DB)
	assert.Equal(t, "https://env.example.com", cfg.Webhook.URL)
}

func TestLoadRejectsBadThresholds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
profiles:
  product:
    thresholds:
      - min: 50
        label: A
      - min: 80
        label: B
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestScorerUsesProfileOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profiles["product"] = Profile{
		Weights: map[string]float64{"trend_velocity": 0.30},
	}

	s, err := cfg.Scorer("product", catalog.ProductWeights, catalog.ProductGrades)
	require.NoError(t, err)

	for _, w := range s.Weights() {
		if w.Name == "trend_velocity" {
			assert.Equal(t, 0.30, w.Weight)
		}
	}
}

func TestScorerWithoutProfileUsesDefaults(t *testing.T) {
	cfg := DefaultConfig()
	s, err := cfg.Scorer("supplier", scoring.WeightTable{{Name: "a", Weight: 1}},
		scoring.GradeThresholds{{Min: 0, Label: "ok"}})
	require.NoError(t, err)
	assert.Len(t, s.Weights(), 1)
}

func TestScorerRejectsInvalidProfile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profiles["product"] = Profile{
		Thresholds: []Threshold{{Min: 10, Label: "low"}, {Min: 90, Label: "high"}},
	}

	_, err := cfg.Scorer("product", catalog.ProductWeights, catalog.ProductGrades)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DB = "/tmp/saved.db"

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(filepath.Join(dir, configFileName))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/saved.db", loaded.DB)
}

func TestSaveValidation(t *testing.T) {
	assert.Error(t, Save("", DefaultConfig()))
	assert.Error(t, Save(t.TempDir(), nil))
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".dropctl"), 0700))
	require.NoError(t, os.MkdirAll(nested, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".dropctl", configFileName), []byte("{}"), 0600))

	found := FindConfigFile(nested)
	assert.Equal(t, filepath.Join(root, ".dropctl", configFileName), found)

	assert.Equal(t, "", FindConfigFile(t.TempDir()))
}
