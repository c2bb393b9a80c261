// Package launch spawns and supervises the two dev servers. The api
// server starts first and gets a readiness window before the frontend
// dev server is launched. After launch the supervisor performs no
// health monitoring; it waits for an interrupt, then terminates both
// children with a bounded graceful wait and SIGKILL escalation.
package launch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Supervisor struct {
	cfg Config
	api *Server
	web *Server
	log *zap.Logger
}

func NewSupervisor(cfg Config, log *zap.Logger) *Supervisor {
	log = log.Named("supervisor")

	api := NewServer("api", StartConfig{
		Cmd:  cfg.Python,
		Args: apiArgs(cfg),
		Cwd:  cfg.BackendDir,
	}, log)

	web := NewServer("frontend", StartConfig{
		Cmd:  cfg.Npm,
		Args: []string{"run", "dev"},
		Cwd:  cfg.ProjectDir,
	}, log)

	return newSupervisor(cfg, api, web, log)
}

func newSupervisor(cfg Config, api, web *Server, log *zap.Logger) *Supervisor {
	return &Supervisor{
		cfg: cfg,
		api: api,
		web: web,
		log: log,
	}
}

func apiArgs(cfg Config) []string {
	args := []string{"-m", "uvicorn", cfg.AppModule}

	if cfg.Reload {
		args = append(args, "--reload")
	}

	args = append(args,
		"--host", cfg.Host,
		"--port", strconv.Itoa(cfg.Port),
	)

	return args
}

// Start launches the api server, waits for it to become ready, then
// launches the frontend dev server.
func (s *Supervisor) Start(ctx context.Context) error {
	if err := s.api.Start(ctx); err != nil {
		return fmt.Errorf("start api server: %w", err)
	}

	s.awaitAPIReady(ctx)

	if err := s.web.Start(ctx); err != nil {
		// do not leave the api server behind
		if stopErr := s.api.Stop(s.cfg.ShutdownTimeout); stopErr != nil {
			s.log.Warn("failed to stop api server", zap.Error(stopErr))
		}
		return fmt.Errorf("start frontend server: %w", err)
	}

	s.log.Info("servers running",
		zap.String("api", s.apiURL("")),
		zap.String("docs", s.apiURL(s.cfg.ReadinessPath)),
		zap.String("frontend", fmt.Sprintf("http://localhost:%d", s.cfg.FrontendPort)),
	)

	return nil
}

// Stop terminates both children. Both always receive a signal, even if
// the other fails to stop or has already exited on its own.
func (s *Supervisor) Stop(context.Context) error {
	s.log.Info("shutting down servers")

	webErr := s.web.Stop(s.cfg.ShutdownTimeout)
	apiErr := s.api.Stop(s.cfg.ShutdownTimeout)

	return errors.Join(webErr, apiErr)
}

// awaitAPIReady gives the api server its head start. With a readiness
// budget configured the docs endpoint is polled until it answers; a
// zero budget falls back to the fixed head-start delay. Launch stays
// best-effort either way: on poll exhaustion the frontend is started
// regardless.
func (s *Supervisor) awaitAPIReady(ctx context.Context) {
	if s.cfg.ReadinessBudget <= 0 {
		s.log.Info("waiting for api server head start",
			zap.Duration("head_start", s.cfg.HeadStart),
		)

		select {
		case <-time.After(s.cfg.HeadStart):
		case <-ctx.Done():
		}

		return
	}

	url := s.apiURL(s.cfg.ReadinessPath)

	if err := awaitReady(ctx, url, s.cfg.ReadinessBudget, s.log); err != nil {
		s.log.Warn("api server not ready, launching frontend anyway",
			zap.String("url", url),
			zap.Duration("budget", s.cfg.ReadinessBudget),
			zap.Error(err),
		)
		return
	}

	s.log.Info("api server ready", zap.String("url", url))
}

func (s *Supervisor) apiURL(path string) string {
	host := s.cfg.Host

	// the wildcard bind address is not dialable
	if host == "0.0.0.0" || host == "" || host == "::" {
		host = "localhost"
	}

	return fmt.Sprintf("http://%s:%d%s", host, s.cfg.Port, path)
}
