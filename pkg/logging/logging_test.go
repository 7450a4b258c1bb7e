// Test Type: Unit Test
// Description: Tests for logger setup and contextualized loggers

package logging_test

import (
	"testing"

	"github.com/hoopdev/ktaga-lab/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	// Keep log files out of the real state home
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{name: "default_warn", verbosity: 0, wantLevel: zerolog.WarnLevel},
		{name: "v_info", verbosity: 1, wantLevel: zerolog.InfoLevel},
		{name: "vv_debug", verbosity: 2, wantLevel: zerolog.DebugLevel},
		{name: "vvv_trace", verbosity: 5, wantLevel: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logging.SetupLogger(tt.verbosity)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestGetLogger(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	logging.SetupLogger(0)

	logger := logging.GetLogger("resolver")
	// Logging through the component logger must not panic
	logger.Warn().Str("group", "zurich").Msg("test message")
}

func TestLogOperationStart(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	logging.SetupLogger(2)

	logger := logging.GetLogger("test")
	done := logging.LogOperationStart(logger, "resolve")
	assert.NotNil(t, done)
	done()
}
