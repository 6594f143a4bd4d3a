package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

/*
Config System Design:
This configuration system implements a hierarchical config with the following precedence
(highest to lowest priority):

1. Runtime overrides (CLI flags)
2. Environment variables (PROMPTPAD_*, optionally loaded from a .env file)
3. Local project config (.promptpad/*.promptpad.{yaml,json})
4. Global user config ($XDG_CONFIG_HOME/promptpad/*.promptpad.{yaml,json})
5. Default values (embedded defaults.promptpad.yaml)

The system supports:
- Multiple config files in each directory, merged alphabetically
- Automatic merging of lists (they combine)
- Deep merging of maps
- Override of scalar values
- Warnings for keys that are not part of the schema
- Schema validation of the final config

Example:
If you have these files:
~/.config/promptpad/keys.promptpad.yaml:  { keymap: { close: ["ctrl+s"] } }
./.promptpad/keys.promptpad.yaml:         { keymap: { close: ["ctrl+q"] } }
The result will be: { keymap: { close: ["ctrl+s", "ctrl+q"] } }
*/

const (
	appName    = "promptpad"
	envPrefix  = "PROMPTPAD"
	fileSuffix = "." + appName
)

//go:embed defaults.promptpad.yaml
var defaultsYAML []byte

// Config holds the configuration and internal viper instance
type Config struct {
	v       *viper.Viper
	mu      sync.RWMutex
	sources map[string][]configSource
}

// envVarConfig defines an environment variable mapping
type envVarConfig struct {
	key      string // Key in the config
	envVar   string // Environment variable name
	isSecret bool   // Whether to redact in logs
}

// Environment variables to load
var envVars = []envVarConfig{
	{key: "dbPath", envVar: "PROMPTPAD_DB_PATH"},
	{key: "log.level", envVar: "PROMPTPAD_LOG_LEVEL"},
	{key: "log.file", envVar: "PROMPTPAD_LOG_FILE"},
	{key: "editor.trigger", envVar: "PROMPTPAD_TRIGGER"},
}

// Options controls where configuration is read from. The zero value reads
// the standard global and local directories.
type Options struct {
	GlobalDir string
	LocalDir  string
	EnvFile   string
	Verbose   bool
	Logger    *slog.Logger
}

func (o *Options) setDefaults() error {
	if o.GlobalDir == "" {
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			xdgConfig = filepath.Join(home, ".config")
		}
		o.GlobalDir = filepath.Join(xdgConfig, appName)
	}
	if o.LocalDir == "" {
		o.LocalDir = "." + appName
	}
	if o.EnvFile == "" {
		o.EnvFile = ".env"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return nil
}

// findConfigFiles returns all *.promptpad.{yaml,json} files in a directory
func findConfigFiles(dir string) ([]string, error) {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, fileSuffix+".yaml") ||
			strings.HasSuffix(name, fileSuffix+".yml") ||
			strings.HasSuffix(name, fileSuffix+".json") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// Load builds the merged configuration described by opts.
func Load(opts Options) (*Config, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, fmt.Errorf("error resolving config directories: %w", err)
	}

	c := &Config{
		v:       viper.New(),
		sources: make(map[string][]configSource),
	}

	// Load defaults first
	if err := c.loadDefaults(); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	// A missing .env file is not an error
	if err := godotenv.Load(opts.EnvFile); err != nil && !os.IsNotExist(err) {
		opts.Logger.Warn("could not read env file", "path", opts.EnvFile, "error", err)
	}

	// Set up env vars
	c.v.SetEnvPrefix(envPrefix)
	c.v.AutomaticEnv()
	for _, env := range envVars {
		c.v.BindEnv(env.key, env.envVar)
	}

	// Load configs in order: global then local
	if err := c.loadConfigs(opts); err != nil {
		return nil, err
	}

	if opts.Verbose {
		c.logConfigSources(opts.Logger)
	}

	return c, nil
}

// New loads the configuration from the standard locations, applies runtime
// overrides and validates the result.
func New(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	c, err := Load(Options{})
	if err != nil {
		return nil, err
	}
	return c.Resolve(overrides)
}

// Resolve applies overrides, validates and returns the typed configuration.
func (c *Config) Resolve(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	overrides.apply(c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	cfg, err := c.GetConfig()
	if err != nil {
		return nil, err
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.Log.LogFile = expandHome(cfg.Log.LogFile)
	return cfg, nil
}

// loadDefaults loads the default configuration from the embedded defaults file
func (c *Config) loadDefaults() error {
	c.v.SetConfigType("yaml")
	if err := c.v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return fmt.Errorf("could not read defaults file: %w", err)
	}
	c.trackSources(c.v.AllSettings(), "defaults")
	return nil
}

func (c *Config) loadConfigs(opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	known := GetKnownKeys()

	// Load files from both locations
	for _, dir := range []string{opts.GlobalDir, opts.LocalDir} {
		files, err := findConfigFiles(dir)
		if err != nil && !os.IsNotExist(err) {
			return err
		}

		for _, f := range files {
			v := viper.New()
			v.SetConfigFile(f)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config file %s: %w", f, err)
			}

			for _, key := range v.AllKeys() {
				if !IsKnownKey(known, key) {
					opts.Logger.Warn("unknown config key", "key", key, "file", f)
				}
			}

			c.trackSources(v.AllSettings(), f)

			// Merge with specific strategy
			if err := c.mergeConfig(v.AllSettings()); err != nil {
				return fmt.Errorf("error merging config from %s: %w", f, err)
			}
		}
	}

	// Environment variables win over files. Merged file values are stored
	// with Set, so env values have to be set the same way.
	for _, env := range envVars {
		if val := os.Getenv(env.envVar); val != "" {
			c.v.Set(env.key, val)
			displayVal := val
			if env.isSecret {
				displayVal = "[REDACTED]"
			}
			key := strings.ToLower(env.key)
			c.sources[key] = append(c.sources[key], configSource{
				value:  displayVal,
				source: fmt.Sprintf("%s environment variable", env.envVar),
			})
		}
	}

	return nil
}

type configSource struct {
	value  interface{}
	source string
}

func (c *Config) mergeConfig(settings map[string]interface{}) error {
	for key, value := range settings {
		existing := c.v.Get(key)
		if existing == nil {
			// Key doesn't exist, just set it
			c.v.Set(key, value)
			continue
		}

		// Handle different types
		switch existingVal := existing.(type) {
		case []interface{}:
			// For slices, append new values and remove duplicates
			if newSlice, ok := value.([]interface{}); ok {
				c.v.Set(key, mergeSlices(existingVal, newSlice))
			} else {
				return fmt.Errorf("type mismatch for key %s: expected slice, got %T", key, value)
			}

		case map[string]interface{}:
			// For maps, recursively merge
			if newMap, ok := value.(map[string]interface{}); ok {
				merged := mergeMapRecursive(existingVal, newMap)
				c.v.Set(key, merged)
			} else {
				return fmt.Errorf("type mismatch for key %s: expected map, got %T", key, value)
			}

		default:
			// For all other types, override
			c.v.Set(key, value)
		}
	}
	return nil
}

func mergeSlices(existing, newSlice []interface{}) []interface{} {
	seen := make(map[interface{}]bool)
	combined := make([]interface{}, 0, len(existing)+len(newSlice))
	for _, v := range append(existing, newSlice...) {
		if !seen[v] {
			seen[v] = true
			combined = append(combined, v)
		}
	}
	return combined
}

func mergeMapRecursive(existing, new map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	// Copy existing map
	for k, v := range existing {
		result[k] = v
	}

	// Merge new map
	for k, v := range new {
		if existing[k] == nil {
			result[k] = v
			continue
		}

		switch existingVal := existing[k].(type) {
		case map[string]interface{}:
			if newVal, ok := v.(map[string]interface{}); ok {
				result[k] = mergeMapRecursive(existingVal, newVal)
			} else {
				result[k] = v
			}
		case []interface{}:
			if newVal, ok := v.([]interface{}); ok {
				result[k] = mergeSlices(existingVal, newVal)
			} else {
				result[k] = v
			}
		default:
			result[k] = v
		}
	}

	return result
}

// trackSources records the file each leaf key came from, keyed by its
// dotted path.
func (c *Config) trackSources(settings map[string]interface{}, source string) {
	flattenSettings("", settings, func(key string, value interface{}) {
		c.sources[key] = append(c.sources[key], configSource{
			value:  value,
			source: source,
		})
	})
}

func flattenSettings(prefix string, settings map[string]interface{}, fn func(key string, value interface{})) {
	for key, value := range settings {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenSettings(full, nested, fn)
			continue
		}
		fn(full, value)
	}
}

// Source returns where the final value of key came from.
func (c *Config) Source(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := c.sources[strings.ToLower(key)]
	if len(list) == 0 {
		return "default"
	}
	return list[len(list)-1].source
}

// PrintConfig writes the final merged configuration as YAML
func (c *Config) PrintConfig(w io.Writer) error {
	c.mu.RLock()
	settings := c.v.AllSettings()
	c.mu.RUnlock()

	// Convert to JSON for consistent formatting
	jsonBytes, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Convert back to interface{} for YAML marshal
	var out interface{}
	if err := json.Unmarshal(jsonBytes, &out); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Convert to YAML for better readability
	yamlBytes, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("error converting to YAML: %w", err)
	}

	// Redact sensitive values
	for _, line := range strings.Split(strings.TrimRight(string(yamlBytes), "\n"), "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 && isSecretKey(strings.TrimSpace(parts[0])) {
			fmt.Fprintf(w, "%s: [REDACTED]\n", parts[0])
			continue
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func (c *Config) logConfigSources(logger *slog.Logger) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	logger.Debug("configuration values and their sources")
	for key, sourceList := range c.sources {
		if len(sourceList) == 0 {
			continue
		}
		last := sourceList[len(sourceList)-1]
		if isSecretKey(key) {
			logger.Debug("config", "key", key, "value", "[REDACTED]", "source", last.source)
			continue
		}
		logger.Debug("config", "key", key, "value", c.v.Get(key), "source", last.source)
	}
}

// Validate validates the configuration against the schema
func (c *Config) Validate() error {
	schema, err := c.GetConfig()
	if err != nil {
		return err
	}

	validate := validator.New()
	if err := validate.Struct(schema); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	// Additional custom validations
	if len(schema.KeyMap.Quit) == 0 {
		return fmt.Errorf("keymap.quit must bind at least one key")
	}

	return nil
}

// Getter methods that delegate to the internal viper instance
func (c *Config) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.Get(key)
}

func (c *Config) GetString(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetString(key)
}

func (c *Config) GetStringSlice(key string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetStringSlice(key)
}

func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.Set(key, value)
}

// Get all settings
func (c *Config) AllSettings() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.AllSettings()
}

// Get typed config
func (c *Config) GetConfig() (*ConfigSchema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var cfg ConfigSchema
	if err := c.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.sources = c.sources
	return &cfg, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
