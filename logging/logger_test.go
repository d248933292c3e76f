package logging_test

import (
	"testing"

	"github.com/milk9111/brawler/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		encoding string
		level    zapcore.Level
		sampled  bool
	}{
		{name: "production", encoding: "json", level: zapcore.InfoLevel, sampled: true},
		{name: "debug", debug: true, encoding: "console", level: zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := logging.Config(tt.debug)
			assert.Equal(t, tt.encoding, cfg.Encoding)
			assert.Equal(t, tt.level, cfg.Level.Level())
			assert.Equal(t, tt.sampled, cfg.Sampling != nil)
			assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
		})
	}
}

func TestNew(t *testing.T) {
	for _, debug := range []bool{false, true} {
		logger, err := logging.New(debug)
		require.NoError(t, err)
		assert.Equal(t, debug, logger.Core().Enabled(zapcore.DebugLevel))
		_ = logger.Sync()
	}
}
