package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	prevLogger, prevLevel := logger, currentLevel
	t.Cleanup(func() {
		logger, currentLevel = prevLogger, prevLevel
	})

	var buf bytes.Buffer
	currentLevel = LINFO
	New(&buf, "", 0)
	return &buf
}

func TestNilLoggerIsSilent(t *testing.T) {
	prev := logger
	logger = nil
	defer func() { logger = prev }()

	assert.NotPanics(t, func() {
		Debugf("x %d", 1)
		Infof("x %d", 1)
		Warningf("x %d", 1)
		Errorf("x %d", 1)
		Info("x")
	})
}

func TestLevelFiltering(t *testing.T) {
	buf := withLogger(t)

	Debugf("hidden %d", 1)
	Infof("Iteration %d, loss = %g", 10, 0.5)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "Iteration 10, loss = 0.5")

	require.NoError(t, SetLevel(LDEBUG))
	Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")

	require.NoError(t, SetLevel(LERROR))
	Warningf("dropped")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Equal(t, LERROR, Level())
}

func TestSetLevelUnknown(t *testing.T) {
	withLogger(t)
	assert.ErrorIs(t, SetLevel(LUNKNOWN), ErrUnknownLevel)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]interface{}{
		"debug":    LDEBUG,
		"INFO":     LINFO,
		" warn ":   LWARNING,
		"warning":  LWARNING,
		"error":    LERROR,
		"critical": LCRITICAL,
		"fatal":    LCRITICAL,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}
