package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
		logger, err := New("dev", level)
		require.NoError(t, err, "level %q", level)
		assert.NotNil(t, logger)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("dev", "chatty")
	assert.Error(t, err)
}

func TestNew_ProdAndDevModes(t *testing.T) {
	for _, env := range []string{"prod", "dev", "staging", ""} {
		logger, err := New(env, "info")
		require.NoError(t, err, "env %q", env)
		logger.Info(map[string]any{"env": env}, "logger constructed")
	}
}

func TestNoopLogger_DiscardsEverything(t *testing.T) {
	logger := NewNoopLogger()
	assert.NotPanics(t, func() {
		logger.Debug(nil, "a")
		logger.Info(map[string]any{"k": "v"}, "b")
		logger.Warn(nil, "c")
		logger.Error(nil, "d")
		logger.Fatal(nil, "e")
	})
}
