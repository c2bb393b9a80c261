package config

import (
	"github.com/plugspotter/devup/internal/bootstrap"
	"github.com/plugspotter/devup/internal/launch"
	"github.com/plugspotter/devup/internal/probe"
	"github.com/plugspotter/devup/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// Probe is the MongoDB connectivity probe configuration
	Probe probe.Config `conf:",squash"`

	// Install is the dependency installer configuration
	Install bootstrap.Config `conf:",squash"`

	// Launch is the process supervisor configuration
	Launch launch.Config `conf:",squash"`
}

// DefaultConfig merges the per-component defaults into the flat key
// space the config layers share.
var DefaultConfig = conf.MergeDefaults("",
	probe.Defaults,
	bootstrap.Defaults,
	launch.Defaults,
)
