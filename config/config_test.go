package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cpstamp/event"
	"github.com/lixenwraith/cpstamp/parameter"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CPSTAMP_DATA_DIR", "/tmp/player")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, Config{
		DataDir:  "/tmp/player",
		Catalog:  "stamps.toml",
		Sound:    true,
		Overflow: event.OverflowDropOldest,
		LogLevel: "info",
		DemoFPS:  parameter.DefaultDemoFPS,
		ExportDB: "stamps.db",
	}, cfg)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CPSTAMP_DATA_DIR", "/srv/save")
	t.Setenv("CPSTAMP_SOUND", "false")
	t.Setenv("CPSTAMP_QUEUE_OVERFLOW", "reject")
	t.Setenv("CPSTAMP_LOG_LEVEL", "debug")
	t.Setenv("CPSTAMP_DEMO_FPS", "60")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "/srv/save", cfg.DataDir)
	assert.False(t, cfg.Sound)
	assert.Equal(t, event.OverflowReject, cfg.Overflow)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 60, cfg.DemoFPS)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("CPSTAMP_DATA_DIR", "/tmp/player")
	path := filepath.Join(t.TempDir(), "cpstamp.toml")
	require.NoError(t, os.WriteFile(path, []byte("catalog = \"games.toml\"\n[queue]\noverflow = \"reject\"\n"), 0o644))

	v := NewViper()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "games.toml", cfg.Catalog)
	assert.Equal(t, event.OverflowReject, cfg.Overflow)

	assert.NoError(t, ReadFile(v, ""))
	assert.Error(t, ReadFile(NewViper(), filepath.Join(t.TempDir(), "missing.toml")))
}

func TestLoadValidation(t *testing.T) {
	tests := map[string]string{
		KeyOverflow: "grow",
		KeyDemoFPS:  "0",
		KeyLogLevel: "chatty",
		KeyCatalog:  " ",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			v := NewViper()
			v.Set(KeyDataDir, "/tmp/player")
			v.Set(key, value)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}
