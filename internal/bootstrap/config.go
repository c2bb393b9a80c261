package bootstrap

import "github.com/plugspotter/devup/util/conf"

type Config struct {
	// ProjectDir is the directory the package managers run in
	ProjectDir string `conf:"project_dir"`

	// Python is the interpreter used to invoke pip
	Python string `conf:"python"`

	// Npm is the frontend package manager binary
	Npm string `conf:"npm"`

	// StrictBackend makes per-package backend install failures fatal
	// instead of best-effort
	StrictBackend bool `conf:"strict_backend_install"`
}

var Defaults = conf.DefaultConfig{
	"project_dir": ".",
	"python":      "python3",
	"npm":         "npm",
}
