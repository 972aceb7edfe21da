package proc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnCapturesStdoutLines(t *testing.T) {
	sc, err := Spawn(context.Background(), t.TempDir(), nil, "sh", "-c", "echo hello; echo world 1>&2")
	require.NoError(t, err)

	var lines []OutputLine
	for line := range sc.Lines {
		lines = append(lines, line)
	}

	timedOut, err := sc.Wait(5 * time.Second)
	require.NoError(t, err)
	assert.False(t, timedOut)
	assert.Equal(t, 0, sc.ExitCode())
	assert.Len(t, lines, 2)
}

func TestWaitTimesOutAndKills(t *testing.T) {
	sc, err := Spawn(context.Background(), t.TempDir(), nil, "sh", "-c", "sleep 30")
	require.NoError(t, err)

	timedOut, err := sc.Wait(50 * time.Millisecond)
	assert.True(t, timedOut)
	assert.Error(t, err)
}
