package launch

import (
	"time"

	"github.com/plugspotter/devup/util/conf"
)

type Config struct {
	// Host is the bind address for the api server
	Host string `conf:"host"`

	// Port is the api server port
	Port int `conf:"port"`

	// FrontendPort is the port the frontend dev server binds to
	FrontendPort int `conf:"frontend_port"`

	// Reload enables hot reload on the api server
	Reload bool `conf:"reload"`

	// AppModule is the asgi application target passed to uvicorn
	AppModule string `conf:"app_module"`

	// Python is the interpreter used to run the api server
	Python string `conf:"python"`

	// Npm is the frontend package manager binary
	Npm string `conf:"npm"`

	// ProjectDir is the working directory of the frontend dev server
	ProjectDir string `conf:"project_dir"`

	// BackendDir is the working directory of the api server
	BackendDir string `conf:"backend_dir"`

	// ReadinessPath is the api server path polled before the frontend
	// dev server is launched
	ReadinessPath string `conf:"readiness_path"`

	// ReadinessBudget bounds the readiness poll. Zero disables polling
	// and falls back to the fixed head-start delay.
	ReadinessBudget time.Duration `conf:"readiness_budget"`

	// HeadStart is the fixed delay between the two launches when
	// readiness polling is disabled
	HeadStart time.Duration `conf:"head_start"`

	// ShutdownTimeout bounds the graceful wait per child on shutdown
	ShutdownTimeout time.Duration `conf:"shutdown_timeout"`
}

var Defaults = conf.DefaultConfig{
	"host":             "0.0.0.0",
	"port":             8000,
	"frontend_port":    5173,
	"reload":           true,
	"app_module":       "app.main:app",
	"python":           "python3",
	"npm":              "npm",
	"project_dir":      ".",
	"backend_dir":      "backend",
	"readiness_path":   "/docs",
	"readiness_budget": "15s",
	"head_start":       "3s",
	"shutdown_timeout": "5s",
}
