package launch

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/plugspotter/devup/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(name, cmd string, args ...string) *Server {
	return NewServer(name, StartConfig{
		Cmd:    cmd,
		Args:   args,
		Stdout: io.Discard,
		Stderr: io.Discard,
	}, zap.NewNop())
}

func TestServer_Start_Running(t *testing.T) {
	s := newTestServer("test", "sleep", "10")

	err := s.Start(context.Background())
	require.NoError(t, err)
	defer s.Stop(time.Second)

	assert.True(t, s.Running())
	assert.NotZero(t, s.Pid())
}

func TestServer_Start_Twice(t *testing.T) {
	s := newTestServer("test", "sleep", "10")

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(time.Second)

	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

func TestServer_Start_CancelledContext(t *testing.T) {
	s := newTestServer("test", "sleep", "10")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Start(ctx))
}

func TestServer_Stop_NeverStarted(t *testing.T) {
	s := newTestServer("test", "sleep", "10")

	assert.NoError(t, s.Stop(time.Second))
}

func TestServer_Stop_AlreadyExited(t *testing.T) {
	s := newTestServer("test", "echo")

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.proc.Wait())

	// stopping an exited child is a no-op success
	assert.NoError(t, s.Stop(time.Second))
}

func TestServer_Stop_EscalatesToKill(t *testing.T) {
	s := newTestServer("test", "sh", "-c", `trap "" TERM; sleep 10`)

	require.NoError(t, s.Start(context.Background()))

	// give the shell time to install the trap
	time.Sleep(200 * time.Millisecond)

	start := time.Now()
	err := s.Stop(300 * time.Millisecond)
	assert.NoError(t, err)

	// graceful window plus the kill wait, not the full sleep
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.False(t, util.IsProcessAlive(s.Pid()))
}
