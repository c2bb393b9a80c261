package launch

import (
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/plugspotter/devup/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startTestProc(t *testing.T, cmd string, args ...string) *proc {
	t.Helper()

	p, err := startProc(StartConfig{
		Cmd:    cmd,
		Args:   args,
		Stdout: io.Discard,
		Stderr: io.Discard,
	}, zap.NewNop())
	require.NoError(t, err)

	return p
}

func TestProc_Start_IsAlive(t *testing.T) {
	p := startTestProc(t, "sleep", "10")
	defer p.Kill(0)

	assert.True(t, p.Alive())
	assert.True(t, util.IsProcessAlive(p.Pid()))
}

func TestProc_Wait_WaitsForProcessToExit(t *testing.T) {
	p := startTestProc(t, "echo")

	err := p.Wait()
	assert.NoError(t, err)

	assert.False(t, p.Alive())
	assert.False(t, util.IsProcessAlive(p.Pid()))
}

func TestProc_Wait_ReturnsExitError(t *testing.T) {
	p := startTestProc(t, "sh", "-c", "exit 1")

	err := p.Wait()
	assert.Error(t, err)

	if err, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, err.ExitCode())
	} else {
		t.Fatal("unexpected error")
	}
}

func TestProc_Terminate_StopsProcess(t *testing.T) {
	p := startTestProc(t, "sleep", "10")

	err := p.Terminate(5 * time.Second)
	assert.NoError(t, err)

	assert.False(t, util.IsProcessAlive(p.Pid()))
}

func TestProc_Terminate_AlreadyExited(t *testing.T) {
	p := startTestProc(t, "echo")

	require.NoError(t, p.Wait())

	// terminating an exited process is a no-op success
	assert.NoError(t, p.Terminate(time.Second))
	assert.NoError(t, p.Terminate(time.Second))
}

func TestProc_Terminate_TimesOutWhenSignalIgnored(t *testing.T) {
	p := startTestProc(t, "sh", "-c", `trap "" TERM; sleep 10`)
	defer p.Kill(0)

	// give the shell time to install the trap
	time.Sleep(200 * time.Millisecond)

	start := time.Now()
	err := p.Terminate(300 * time.Millisecond)
	assert.ErrorIs(t, err, ErrStopTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)

	// the process is still around until it is killed
	assert.True(t, util.IsProcessAlive(p.Pid()))

	err = p.Kill(5 * time.Second)
	assert.NoError(t, err)
	assert.False(t, util.IsProcessAlive(p.Pid()))
}
