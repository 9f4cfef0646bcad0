package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novella/internal/input"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "stories/demo.yaml", cfg.StoryPath)
	assert.Equal(t, BackendFile, cfg.SaveBackend)
	assert.Equal(t, 6, cfg.SlotCount)
	assert.Equal(t, "saveSlot_", cfg.SaveKeyPrefix)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, input.DefaultMapping(), cfg.Mapping())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("NOVELLA_SAVE_BACKEND", "redis")
	t.Setenv("NOVELLA_REDIS_ADDR", "cache:6380")
	t.Setenv("NOVELLA_SLOT_COUNT", "9")
	t.Setenv("NOVELLA_PAD_CONFIRM", "2")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.SaveBackend)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 9, cfg.SlotCount)
	assert.Equal(t, 2, cfg.Mapping()[input.Confirm])
	assert.Equal(t, "debug", cfg.Logger().Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOVELLA_SAVE_DIR=from-dotenv\n"), 0o600))
	t.Chdir(dir)
	// godotenv never overrides variables that are already set, and
	// t.Setenv restores the original value afterwards.
	t.Setenv("NOVELLA_SAVE_DIR", "")
	require.NoError(t, os.Unsetenv("NOVELLA_SAVE_DIR"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.SaveDir)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"backend":       {"NOVELLA_SAVE_BACKEND", "postgres"},
		"slots":         {"NOVELLA_SLOT_COUNT", "0"},
		"tps":           {"NOVELLA_TPS", "-1"},
		"not a number":  {"NOVELLA_TPS", "fast"},
		"shared button": {"NOVELLA_PAD_UP", "0"},
		"negative pad":  {"NOVELLA_PAD_DOWN", "-3"},
		"bad channel":   {"NOVELLA_KEYS", "JUMP:Space"},
		"no keys":       {"NOVELLA_KEYS", "CONFIRM:|"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_KeyBindings(t *testing.T) {
	t.Setenv("NOVELLA_KEYS", "confirm:Enter|Space,NAV_UP:W")

	cfg, err := Load()
	require.NoError(t, err)
	keys, err := cfg.KeyBindings()
	require.NoError(t, err)
	assert.Equal(t, map[input.Channel][]string{
		input.Confirm: {"Enter", "Space"},
		input.NavUp:   {"W"},
	}, keys)
}
