package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ExtensionPaths []string      `mapstructure:"extension_paths"`
	LogLevel       string        `mapstructure:"log_level"`
	Inspect        InspectConfig `mapstructure:"inspect"`
	Wasm           WasmConfig    `mapstructure:"wasm"`
}

// InspectConfig holds inspector output settings.
type InspectConfig struct {
	// Output format: "text" or "json".
	Output string `mapstructure:"output"`
}

// WasmConfig holds guest runtime configuration.
type WasmConfig struct {
	// Memory limit per module (in pages, 64KB each).
	MemoryPages uint32 `mapstructure:"memory_pages"`
	// Enable debug logging.
	Debug bool `mapstructure:"debug"`
	// Compilation cache directory.
	CacheDir string `mapstructure:"cache_dir"`
	// Maximum concurrent instances.
	MaxInstances int `mapstructure:"max_instances"`
	// Guest call timeout (seconds).
	ExecutionTimeout int `mapstructure:"execution_timeout"`
}

// Load reads configuration from configPath (optional) on top of defaults.
// Environment variables prefixed with PROBE_ override both, e.g.
// PROBE_LOG_LEVEL or PROBE_WASM_MEMORY_PAGES.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("extension_paths", []string{"./extensions"})
	v.SetDefault("log_level", "info")
	v.SetDefault("inspect.output", "text")

	v.SetDefault("wasm.memory_pages", 256) // 16MB
	v.SetDefault("wasm.debug", false)
	v.SetDefault("wasm.cache_dir", "")
	v.SetDefault("wasm.max_instances", 100)
	v.SetDefault("wasm.execution_timeout", 30)

	v.SetEnvPrefix("PROBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config '%s': %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Inspect.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid inspect.output %q (must be text or json)", c.Inspect.Output)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn or error)", c.LogLevel)
	}

	if c.Wasm.ExecutionTimeout < 0 {
		return fmt.Errorf("invalid wasm.execution_timeout %d (must not be negative)", c.Wasm.ExecutionTimeout)
	}

	return nil
}
