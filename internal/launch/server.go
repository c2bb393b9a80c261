package launch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

var ErrAlreadyStarted = errors.New("server already started")

// killWait bounds the wait after escalating to SIGKILL.
const killWait = 2 * time.Second

// Server is one supervised child process. It owns the process handle
// exclusively; once stopped the handle is reaped and the Server is
// not restartable.
type Server struct {
	name  string
	start StartConfig
	proc  *proc
	log   *zap.Logger
}

func NewServer(name string, start StartConfig, log *zap.Logger) *Server {
	return &Server{
		name:  name,
		start: start,
		log:   log.Named(name),
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s.proc != nil {
		return ErrAlreadyStarted
	}

	if ctx.Err() != nil {
		return fmt.Errorf("failed to start %s: %w", s.name, ctx.Err())
	}

	s.log.Info("starting",
		zap.String("cmd", s.start.Cmd),
		zap.Strings("args", s.start.Args),
		zap.String("cwd", s.start.Cwd),
	)

	proc, err := startProc(s.start, s.log)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", s.name, err)
	}

	s.proc = proc

	return nil
}

// Running reports whether the child was started and has not exited.
// Note that the supervisor performs no health monitoring; a child that
// exits on its own simply flips this to false.
func (s *Server) Running() bool {
	return s.proc != nil && s.proc.Alive()
}

func (s *Server) Pid() int {
	if s.proc == nil {
		return 0
	}

	return s.proc.Pid()
}

// Stop gracefully terminates the child with a bounded wait, escalating
// to SIGKILL if the graceful window elapses. Stopping a never-started
// or already-exited child is a no-op success.
func (s *Server) Stop(timeout time.Duration) error {
	if s.proc == nil {
		return nil
	}

	err := s.proc.Terminate(timeout)
	if err == nil {
		s.log.Info("stopped")
		return nil
	}

	if !errors.Is(err, ErrStopTimeout) {
		return fmt.Errorf("stop %s: %w", s.name, err)
	}

	s.log.Warn("did not exit in time, killing",
		zap.Duration("timeout", timeout),
	)

	if err := s.proc.Kill(killWait); err != nil {
		s.log.Warn("kill failed, process may be leaked",
			zap.Int("pid", s.proc.Pid()),
			zap.Error(err),
		)
		return fmt.Errorf("kill %s: %w", s.name, err)
	}

	s.log.Info("killed")

	return nil
}
