package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/gro/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggerVerbosityLevels(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		logging.SetupLogger(tt.verbosity)
		assert.Equal(t, tt.want, zerolog.GlobalLevel(), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLoggerCreatesLogFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	logging.SetupLogger(0)

	_, err := os.Stat(filepath.Join(stateHome, "gro", "gro.log"))
	require.NoError(t, err)
}

func TestGetLogger(t *testing.T) {
	logger := logging.GetLogger("reconcile")
	// The component logger must be usable without panicking.
	logger.Debug().Str("workspace", "play").Msg("test message")
}
