package sysinfo

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProcStat = `cpu  2255 34 2290 22625563 6290 127 456 0 0 0
cpu0 1132 34 1441 11311718 3675 127 438 0 0 0
intr 114930548 113199788 3 0 5 263 0 4 [... lots more numbers ...]
ctxt 1990473
btime 1792435810
processes 2915
procs_running 1
procs_blocked 0
`

func TestParseBtime(t *testing.T) {
	got, err := parseBtime(strings.NewReader(sampleProcStat))
	require.NoError(t, err)
	assert.Equal(t, int64(1792435810), got.Unix())
	assert.Equal(t, 0, got.Nanosecond())
}

func TestParseBtime_Missing(t *testing.T) {
	_, err := parseBtime(strings.NewReader("cpu 1 2 3\nctxt 5\n"))
	assert.True(t, errors.Is(err, errNoBtime))
}

func TestParseBtime_Invalid(t *testing.T) {
	for _, content := range []string{"btime abc\n", "btime -5\n", "btime 0\n"} {
		_, err := parseBtime(strings.NewReader(content))
		assert.Error(t, err, content)
	}
}
