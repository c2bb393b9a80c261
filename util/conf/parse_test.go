package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	URI     string        `conf:"mongodb_uri"`
	DB      string        `conf:"mongodb_db"`
	Timeout time.Duration `conf:"probe_timeout"`
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse[testConfig](ParseOptions{
		Defaults: DefaultConfig{
			"mongodb_db":    "plugspotter",
			"probe_timeout": "10s",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "plugspotter", cfg.DB)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.URI)
}

func TestParse_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("MONGODB_DB", "other")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Parse[testConfig](ParseOptions{
		Defaults: DefaultConfig{"mongodb_db": "plugspotter"},
	})
	require.NoError(t, err)

	assert.Equal(t, "other", cfg.DB)
	assert.Equal(t, "mongodb://localhost:27017", cfg.URI)
}

func TestParse_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")

	err := os.WriteFile(file, []byte("MONGODB_URI=mongodb://localhost:27017\nMONGODB_DB=filedb\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Parse[testConfig](ParseOptions{FileName: file})
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.URI)
	assert.Equal(t, "filedb", cfg.DB)
}

func TestParse_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")

	err := os.WriteFile(file, []byte("MONGODB_DB=filedb\n"), 0o644)
	require.NoError(t, err)

	t.Setenv("MONGODB_DB", "envdb")

	cfg, err := Parse[testConfig](ParseOptions{FileName: file})
	require.NoError(t, err)

	assert.Equal(t, "envdb", cfg.DB)
}

func TestParse_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Parse[testConfig](ParseOptions{
		Defaults: DefaultConfig{"mongodb_db": "plugspotter"},
		FileName: filepath.Join(t.TempDir(), "missing.env"),
	})
	require.NoError(t, err)

	assert.Equal(t, "plugspotter", cfg.DB)
}

func TestMergeDefaults(t *testing.T) {
	merged := MergeDefaults("",
		DefaultConfig{"a": 1},
		DefaultConfig{"b": 2},
		DefaultConfig{"a": 3},
	)

	// later maps win
	assert.Equal(t, DefaultConfig{"a": 3, "b": 2}, merged)
}

func TestMergeDefaults_Namespaced(t *testing.T) {
	merged := MergeDefaults("probe", DefaultConfig{"timeout": "10s"})

	assert.Equal(t, DefaultConfig{"probe.timeout": "10s"}, merged)
}
