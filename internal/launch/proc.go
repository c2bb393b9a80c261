package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ErrStopTimeout is returned when a child does not exit within the
// bounded wait after a signal.
var ErrStopTimeout = errors.New("stop timeout")

// StartConfig describes one child process.
type StartConfig struct {
	// Cmd is the path or name of the binary to execute
	Cmd string

	// Args is the list of arguments to pass to the command
	Args []string

	// Cwd is the working directory in which
	// the binary should be executed
	Cwd string

	// Env is a map of extra environment variables, appended
	// to the inherited environment
	Env map[string]string

	// Stdout and Stderr receive the child output streams.
	// Nil defaults to the parent streams.
	Stdout io.Writer
	Stderr io.Writer
}

type proc struct {
	pid         int
	termination chan error

	log *zap.Logger
}

func startProc(config StartConfig, log *zap.Logger) (*proc, error) {
	cmd := exec.Command(config.Cmd, config.Args...)

	if config.Env != nil {
		env := os.Environ()
		for k, v := range config.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		cmd.Env = env
	}

	if config.Cwd != "" {
		cmd.Dir = config.Cwd
	}

	cmd.Stdout = config.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}

	cmd.Stderr = config.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	// own process group, so signals reach the whole child tree
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	err := cmd.Start()
	if err != nil {
		return nil, err
	}

	log = log.Named("proc").With(zap.Int("pid", cmd.Process.Pid))

	process := &proc{
		pid:         cmd.Process.Pid,
		termination: make(chan error, 1),
		log:         log,
	}

	go func() {
		// block until the process exits
		err := cmd.Wait()

		// report the exit error to any waiter
		process.termination <- err

		// close the termination channel
		close(process.termination)
	}()

	return process, nil
}

func (p *proc) Pid() int {
	return p.pid
}

// Alive reports whether the process has not yet been reaped.
func (p *proc) Alive() bool {
	select {
	case <-p.termination:
		return false
	default:
		return true
	}
}

// Terminate sends SIGTERM and waits up to timeout for the process to
// exit. Terminating an already exited process is a no-op success.
func (p *proc) Terminate(timeout time.Duration) error {
	select {
	case <-p.termination:
		p.log.Debug("process already terminated")
		return nil
	default:
		// continue
	}

	p.signal(syscall.SIGTERM)

	return p.waitForTermination(timeout)
}

// Kill sends SIGKILL and waits up to timeout for the process to exit.
// Killing an already exited process is a no-op success.
func (p *proc) Kill(timeout time.Duration) error {
	select {
	case <-p.termination:
		p.log.Debug("process already terminated")
		return nil
	default:
		// continue
	}

	p.signal(syscall.SIGKILL)

	return p.waitForTermination(timeout)
}

// Wait blocks until the process exits and returns its exit error, if
// any. Waiting again after exit returns nil.
func (p *proc) Wait() error {
	return <-p.termination
}

func (p *proc) waitForTermination(timeout time.Duration) error {
	// if timeout is 0, wait indefinitely
	if timeout == 0 {
		<-p.termination
		return nil
	}

	select {
	case <-p.termination:
		return nil
	case <-time.After(timeout):
		return ErrStopTimeout
	}
}

func (p *proc) signal(signal syscall.Signal) {
	log := p.log.With(zap.Stringer("signal", signal))

	log.Info("sending signal")

	// best effort, ignore errors
	if err := p.sendSignal(signal); err != nil {
		log.Error("signal failed", zap.Error(err))
	}
}

func (p *proc) sendSignal(signal syscall.Signal) error {
	if pgid, err := syscall.Getpgid(p.pid); err == nil {
		// negative pid sends the signal to the whole process group
		return syscall.Kill(-pgid, signal)
	} else {
		return syscall.Kill(p.pid, signal)
	}
}
