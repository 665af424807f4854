/*
Package config manages the TOML config for algocore services.
*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bastiangx/algocore/internal/utils"
	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "algocore"

// Config holds the entire config structure
type Config struct {
	Lexicon LexiconConfig `toml:"lexicon"`
	Grid    GridConfig    `toml:"grid"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
	Log     LogConfig     `toml:"log"`
}

// LexiconConfig holds dictionary and search options.
type LexiconConfig struct {
	FuzzyDistance int  `toml:"fuzzy_distance"`
	CacheSize     int  `toml:"cache_size"`
	Seed          bool `toml:"seed"`
}

// GridConfig holds pathfinding defaults.
type GridConfig struct {
	Rows      int    `toml:"rows"`
	Cols      int    `toml:"cols"`
	Algorithm string `toml:"algorithm"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MinQueryLen  int  `toml:"min_query_len"`
	MaxQueryLen  int  `toml:"max_query_len"`
	WatchConfig  bool `toml:"watch_config"`
	IncludeSteps bool `toml:"include_steps"`
}

// CliConfig holds interactive shell options.
type CliConfig struct {
	DefaultMode string `toml:"default_mode"`
	Color       bool   `toml:"color"`
	NoFilter    bool   `toml:"no_filter"`
}

// LogConfig holds the log level name.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			FuzzyDistance: 2,
			CacheSize:     256,
			Seed:          true,
		},
		Grid: GridConfig{
			Rows:      25,
			Cols:      50,
			Algorithm: "dijkstra",
		},
		Server: ServerConfig{
			MinQueryLen:  1,
			MaxQueryLen:  60,
			WatchConfig:  true,
			IncludeSteps: false,
		},
		CLI: CliConfig{
			DefaultMode: "exact",
			Color:       true,
			NoFilter:    false,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. the platform config dir (XDG on linux)
// 2. ~/.algocore
// 3. the executable dir
func GetConfigDir() (string, error) {
	primaryPath := utils.PlatformConfigDir(AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		dotPath := filepath.Join(homeDir, "."+AppName)
		if result := utils.CheckDirStatus(dotPath); result.Writable {
			return dotPath, nil
		}
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [ConfigDir]/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. When strict decoding fails every
// section that still parses is kept and the rest fall back to defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	unknown, err := utils.LoadTOMLFile(configPath, config)
	if err != nil {
		return tryPartialParse(configPath)
	}
	if len(unknown) > 0 {
		log.Warnf("Ignoring unknown config keys in %s: %s", configPath, strings.Join(unknown, ", "))
	}
	return config.normalized(), nil
}

// tryPartialParse salvages what it can from a broken file.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "lexicon"); ok {
		extractLexiconConfig(section, &config.Lexicon)
	}
	if section, ok := utils.ExtractSection(raw, "grid"); ok {
		extractGridConfig(section, &config.Grid)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(raw, "log"); ok {
		if val, ok := utils.ExtractString(section, "level"); ok {
			config.Log.Level = val
		}
	}
	return config.normalized(), nil
}

func extractLexiconConfig(data map[string]any, lex *LexiconConfig) {
	if val, ok := utils.ExtractInt64(data, "fuzzy_distance"); ok {
		lex.FuzzyDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		lex.CacheSize = val
	}
	if val, ok := utils.ExtractBool(data, "seed"); ok {
		lex.Seed = val
	}
}

func extractGridConfig(data map[string]any, grid *GridConfig) {
	if val, ok := utils.ExtractInt64(data, "rows"); ok {
		grid.Rows = val
	}
	if val, ok := utils.ExtractInt64(data, "cols"); ok {
		grid.Cols = val
	}
	if val, ok := utils.ExtractString(data, "algorithm"); ok {
		grid.Algorithm = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "min_query_len"); ok {
		server.MinQueryLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query_len"); ok {
		server.MaxQueryLen = val
	}
	if val, ok := utils.ExtractBool(data, "watch_config"); ok {
		server.WatchConfig = val
	}
	if val, ok := utils.ExtractBool(data, "include_steps"); ok {
		server.IncludeSteps = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "default_mode"); ok {
		cli.DefaultMode = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
	if val, ok := utils.ExtractBool(data, "no_filter"); ok {
		cli.NoFilter = val
	}
}

// normalized replaces out of range values with defaults.
func (c *Config) normalized() *Config {
	def := DefaultConfig()
	if c.Lexicon.FuzzyDistance < 0 {
		log.Warnf("fuzzy_distance %d is negative, using %d", c.Lexicon.FuzzyDistance, def.Lexicon.FuzzyDistance)
		c.Lexicon.FuzzyDistance = def.Lexicon.FuzzyDistance
	}
	if c.Lexicon.CacheSize <= 0 {
		c.Lexicon.CacheSize = def.Lexicon.CacheSize
	}
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 || c.Grid.Rows*c.Grid.Cols < 2 {
		log.Warnf("grid %dx%d is too small, using %dx%d", c.Grid.Rows, c.Grid.Cols, def.Grid.Rows, def.Grid.Cols)
		c.Grid.Rows, c.Grid.Cols = def.Grid.Rows, def.Grid.Cols
	}
	if c.Server.MinQueryLen < 0 {
		c.Server.MinQueryLen = def.Server.MinQueryLen
	}
	if c.Server.MaxQueryLen > 0 && c.Server.MaxQueryLen < c.Server.MinQueryLen {
		log.Warnf("max_query_len %d below min_query_len %d, using %d", c.Server.MaxQueryLen, c.Server.MinQueryLen, def.Server.MaxQueryLen)
		c.Server.MaxQueryLen = def.Server.MaxQueryLen
	}
	return c
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes server values and saves to file. Nil arguments keep the
// current value.
func (c *Config) Update(configPath string, minQueryLen, maxQueryLen *int, includeSteps *bool) error {
	server := &c.Server
	if minQueryLen != nil {
		server.MinQueryLen = *minQueryLen
	}
	if maxQueryLen != nil {
		server.MaxQueryLen = *maxQueryLen
	}
	if includeSteps != nil {
		server.IncludeSteps = *includeSteps
	}
	c.normalized()
	return SaveConfig(c, configPath)
}
