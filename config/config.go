// Package config resolves runtime settings from defaults, CPSTAMP_* env and an optional file
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/lixenwraith/cpstamp/event"
	"github.com/lixenwraith/cpstamp/logging"
	"github.com/lixenwraith/cpstamp/parameter"
)

const (
	envPrefix       = "CPSTAMP"
	defaultCatalog  = "stamps.toml"
	defaultLogLevel = "info"
	defaultExportDB = "stamps.db"
	maxDemoFPS      = 240
)

// Config keys
const (
	KeyDataDir  = "data_dir"
	KeyCatalog  = "catalog"
	KeySound    = "sound"
	KeyOverflow = "queue.overflow"
	KeyLogLevel = "log.level"
	KeyLogFile  = "log.file"
	KeyDemoFPS  = "demo.fps"
	KeyExportDB = "export.db"
)

// Config captures runtime configuration for the CLI and demo host
type Config struct {
	DataDir  string
	Catalog  string
	Sound    bool
	Overflow event.OverflowPolicy
	LogLevel string
	LogFile  string
	DemoFPS  int
	ExportDB string
}

// NewViper returns a viper instance with defaults and env bindings configured
func NewViper() *viper.Viper {
	v := viper.New()
	ApplyDefaults(v)
	return v
}

// ApplyDefaults configures defaults and env bindings on v
// data_dir defaults to the user's home directory when it can be resolved
func ApplyDefaults(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		v.SetDefault(KeyDataDir, home)
	}
	v.SetDefault(KeyCatalog, defaultCatalog)
	v.SetDefault(KeySound, true)
	v.SetDefault(KeyOverflow, event.OverflowDropOldest.String())
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyDemoFPS, parameter.DefaultDemoFPS)
	v.SetDefault(KeyExportDB, defaultExportDB)
}

// ReadFile merges a TOML/YAML/JSON config file into v; an empty path is a no-op
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load parses runtime configuration from viper
func Load(v *viper.Viper) (Config, error) {
	overflow, ok := event.ParseOverflowPolicy(strings.ToLower(strings.TrimSpace(v.GetString(KeyOverflow))))
	if !ok {
		return Config{}, fmt.Errorf("%s: unknown policy %q (want drop-oldest or reject)", KeyOverflow, v.GetString(KeyOverflow))
	}

	cfg := Config{
		DataDir:  v.GetString(KeyDataDir),
		Catalog:  v.GetString(KeyCatalog),
		Sound:    v.GetBool(KeySound),
		Overflow: overflow,
		LogLevel: v.GetString(KeyLogLevel),
		LogFile:  v.GetString(KeyLogFile),
		DemoFPS:  v.GetInt(KeyDemoFPS),
		ExportDB: v.GetString(KeyExportDB),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%s is required", KeyDataDir)
	}
	if strings.TrimSpace(c.Catalog) == "" {
		return fmt.Errorf("%s is required", KeyCatalog)
	}
	if c.DemoFPS < 1 || c.DemoFPS > maxDemoFPS {
		return fmt.Errorf("%s must be between 1 and %d, got %d", KeyDemoFPS, maxDemoFPS, c.DemoFPS)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return nil
}
