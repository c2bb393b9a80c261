package bootstrap

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var testPackages = []Package{
	{Name: "fastapi", Version: "0.104.1"},
	{Name: "motor", Version: "3.3.2"},
}

func newTestInstaller(cfg Config) *Installer {
	return NewInstaller(cfg, zap.NewNop(),
		WithPackages(testPackages),
		WithOutput(io.Discard, io.Discard),
	)
}

func TestPackage_Spec(t *testing.T) {
	assert.Equal(t, "fastapi==0.104.1", Package{Name: "fastapi", Version: "0.104.1"}.Spec())
}

func TestInstaller_Backend_BestEffort(t *testing.T) {
	// `false` rejects every pip invocation, but without strict mode
	// the install phase still reports success
	i := newTestInstaller(Config{ProjectDir: ".", Python: "false", Npm: "true"})

	assert.NoError(t, i.Backend(context.Background()))
}

func TestInstaller_Backend_Strict(t *testing.T) {
	i := newTestInstaller(Config{
		ProjectDir:    ".",
		Python:        "false",
		Npm:           "true",
		StrictBackend: true,
	})

	err := i.Backend(context.Background())
	assert.ErrorContains(t, err, "2 of 2 backend packages failed")
}

func TestInstaller_Backend_Succeeds(t *testing.T) {
	i := newTestInstaller(Config{
		ProjectDir:    ".",
		Python:        "true",
		Npm:           "true",
		StrictBackend: true,
	})

	assert.NoError(t, i.Backend(context.Background()))
}

func TestInstaller_Frontend_ReturnsExitStatus(t *testing.T) {
	ok := newTestInstaller(Config{ProjectDir: ".", Python: "true", Npm: "true"})
	assert.NoError(t, ok.Frontend(context.Background()))

	failing := newTestInstaller(Config{ProjectDir: ".", Python: "true", Npm: "false"})
	assert.Error(t, failing.Frontend(context.Background()))
}
