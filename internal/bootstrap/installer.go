// Package bootstrap materializes the backend and frontend dependency
// sets with the ecosystem package managers. Backend installs are
// best-effort per package; the frontend install is all-or-nothing.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Package is one pinned backend dependency.
type Package struct {
	Name    string
	Version string
}

// Spec returns the pip requirement specifier, e.g. "fastapi==0.104.1".
func (p Package) Spec() string {
	return p.Name + "==" + p.Version
}

// BackendPackages is the pinned backend dependency set. Order is kept
// for log readability only.
var BackendPackages = []Package{
	{Name: "fastapi", Version: "0.104.1"},
	{Name: "uvicorn[standard]", Version: "0.24.0"},
	{Name: "motor", Version: "3.3.2"},
	{Name: "pymongo", Version: "4.6.0"},
	{Name: "pydantic", Version: "2.5.0"},
	{Name: "pydantic-settings", Version: "2.1.0"},
	{Name: "python-jose[cryptography]", Version: "3.3.0"},
	{Name: "passlib[bcrypt]", Version: "1.7.4"},
	{Name: "python-multipart", Version: "0.0.6"},
	{Name: "python-dotenv", Version: "1.0.0"},
}

type Installer struct {
	cfg      Config
	packages []Package
	stdout   io.Writer
	stderr   io.Writer
	log      *zap.Logger
}

// Option customizes installer behavior.
type Option func(*Installer)

// WithPackages overrides the backend dependency set.
func WithPackages(packages []Package) Option {
	return func(i *Installer) {
		i.packages = packages
	}
}

// WithOutput redirects the package manager output streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(i *Installer) {
		i.stdout = stdout
		i.stderr = stderr
	}
}

func NewInstaller(cfg Config, log *zap.Logger, opts ...Option) *Installer {
	i := &Installer{
		cfg:      cfg,
		packages: BackendPackages,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		log:      log.Named("install"),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Backend installs the pinned backend packages one by one with a quiet
// pip invocation. Individual failures do not abort the loop; a summary
// count is reported at the end. The error return is nil unless
// StrictBackend is set and at least one package failed.
func (i *Installer) Backend(ctx context.Context) error {
	i.log.Info("installing backend dependencies",
		zap.Int("packages", len(i.packages)),
	)

	failed := 0
	for _, pkg := range i.packages {
		i.log.Info("installing", zap.String("package", pkg.Spec()))

		if err := i.run(ctx, i.cfg.Python, "-m", "pip", "install", "-q", pkg.Spec()); err != nil {
			failed++
			i.log.Warn("package install failed",
				zap.String("package", pkg.Spec()),
				zap.Error(err),
			)
		}
	}

	if failed > 0 {
		i.log.Warn("some backend dependencies failed to install",
			zap.Int("failed", failed),
			zap.Int("total", len(i.packages)),
		)

		if i.cfg.StrictBackend {
			return fmt.Errorf("%d of %d backend packages failed to install", failed, len(i.packages))
		}

		return nil
	}

	i.log.Info("backend dependencies installed")

	return nil
}

// Frontend runs a single manifest-driven install. Its exit status is
// returned verbatim; callers treat failure as fatal.
func (i *Installer) Frontend(ctx context.Context) error {
	i.log.Info("installing frontend dependencies")

	if err := i.run(ctx, i.cfg.Npm, "install"); err != nil {
		return fmt.Errorf("%s install: %w", i.cfg.Npm, err)
	}

	i.log.Info("frontend dependencies installed")

	return nil
}

// run executes one package manager invocation rooted at the project
// directory. The working directory is scoped to the command, the
// process-wide cwd is never touched.
func (i *Installer) run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = i.cfg.ProjectDir
	cmd.Stdout = i.stdout
	cmd.Stderr = i.stderr

	return cmd.Run()
}
