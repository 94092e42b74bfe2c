package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		level, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, level.Level(), name)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sea.log")
	logger, err := New(Config{Level: "debug", File: path, Encoding: "json"})
	require.NoError(t, err)

	logger.Debug("surface uploaded")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"surface uploaded"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}
