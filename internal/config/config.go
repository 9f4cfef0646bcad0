package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"novella/internal/input"
	"novella/internal/logger"
)

// Save backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds the player configuration, read from the environment.
type Config struct {
	StoryPath string `envconfig:"NOVELLA_STORY_PATH" default:"stories/demo.yaml"`
	AssetsDir string `envconfig:"NOVELLA_ASSETS_DIR" default:"assets"`
	ExportDir string `envconfig:"NOVELLA_EXPORT_DIR" default:"exports"`

	// Save slots
	SaveBackend   string `envconfig:"NOVELLA_SAVE_BACKEND" default:"file"`
	SaveDir       string `envconfig:"NOVELLA_SAVE_DIR" default:"saves"`
	SaveKeyPrefix string `envconfig:"NOVELLA_SAVE_KEY_PREFIX" default:"saveSlot_"`
	SlotCount     int    `envconfig:"NOVELLA_SLOT_COUNT" default:"6"`

	// Redis, only for the redis backend
	RedisAddr      string `envconfig:"NOVELLA_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `envconfig:"NOVELLA_REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"NOVELLA_REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"NOVELLA_REDIS_KEY_PREFIX" default:"novella:"`

	// Logging
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`
	LogOutput   string `envconfig:"LOG_OUTPUT"`

	// Window and loop
	TPS          int `envconfig:"NOVELLA_TPS" default:"60"`
	WindowWidth  int `envconfig:"NOVELLA_WINDOW_WIDTH" default:"960"`
	WindowHeight int `envconfig:"NOVELLA_WINDOW_HEIGHT" default:"540"`

	// Gamepad button indices (standard layout)
	PadConfirm int `envconfig:"NOVELLA_PAD_CONFIRM" default:"0"`
	PadCancel  int `envconfig:"NOVELLA_PAD_CANCEL" default:"1"`
	PadMenu    int `envconfig:"NOVELLA_PAD_MENU" default:"9"`
	PadUp      int `envconfig:"NOVELLA_PAD_UP" default:"12"`
	PadDown    int `envconfig:"NOVELLA_PAD_DOWN" default:"13"`
	PadLeft    int `envconfig:"NOVELLA_PAD_LEFT" default:"14"`
	PadRight   int `envconfig:"NOVELLA_PAD_RIGHT" default:"15"`

	// Keyboard overrides, e.g. "CONFIRM:Enter|Space,NAV_UP:W"
	Keys map[string]string `envconfig:"NOVELLA_KEYS"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and the gamepad mapping.
func (c *Config) Validate() error {
	switch c.SaveBackend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown save backend %q", c.SaveBackend)
	}
	if c.SlotCount <= 0 {
		return fmt.Errorf("slot count must be positive, got %d", c.SlotCount)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if err := c.Mapping().Validate(); err != nil {
		return fmt.Errorf("gamepad mapping: %w", err)
	}
	if _, err := c.KeyBindings(); err != nil {
		return fmt.Errorf("keyboard mapping: %w", err)
	}
	return nil
}

// KeyBindings returns the keyboard overrides by channel. Key names are
// resolved by the input device.
func (c *Config) KeyBindings() (map[input.Channel][]string, error) {
	out := make(map[input.Channel][]string, len(c.Keys))
	for name, keys := range c.Keys {
		ch, err := input.ParseChannel(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		var names []string
		for _, k := range strings.Split(keys, "|") {
			if k = strings.TrimSpace(k); k != "" {
				names = append(names, k)
			}
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("channel %s: no keys", ch)
		}
		out[ch] = names
	}
	return out, nil
}

// Mapping returns the configured gamepad mapping.
func (c *Config) Mapping() input.Mapping {
	return input.Mapping{
		input.Confirm:  c.PadConfirm,
		input.Cancel:   c.PadCancel,
		input.Menu:     c.PadMenu,
		input.NavUp:    c.PadUp,
		input.NavDown:  c.PadDown,
		input.NavLeft:  c.PadLeft,
		input.NavRight: c.PadRight,
	}
}

// Logger returns the logger settings.
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:      c.LogLevel,
		Encoding:   c.LogEncoding,
		OutputPath: c.LogOutput,
	}
}
