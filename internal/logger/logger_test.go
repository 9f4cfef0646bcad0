package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.log")
	log, err := New(Config{Level: "debug", Encoding: "json", OutputPath: path})
	require.NoError(t, err)

	log.Debug("scene loaded", zap.Int("scene", 2))
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(b))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "scene loaded", entry["msg"])
	assert.Equal(t, 2.0, entry["scene"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_DefaultsAndFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.log")
	log, err := New(Config{Level: "chatty", Encoding: "xml", OutputPath: path})
	require.NoError(t, err)

	assert.False(t, log.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
}
