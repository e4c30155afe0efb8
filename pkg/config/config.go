package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for manifestneat
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Prompt PromptConfig `mapstructure:"prompt"`
	Commit CommitConfig `mapstructure:"commit"`
}

// ScanConfig holds manifest discovery options
type ScanConfig struct {
	// Patterns are doublestar globs, relative to the target root,
	// that locate manifest files.
	Patterns []string `mapstructure:"patterns"`
}

// PromptConfig holds interactive prompt options
type PromptConfig struct {
	// Reprompt loops on unrecognized input instead of treating it as skip.
	Reprompt bool `mapstructure:"reprompt"`
}

// CommitConfig holds commit recorder options
type CommitConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var defaultConfig = Config{
	Scan: ScanConfig{
		Patterns: []string{"integrations/*/manifest.json"},
	},
	Prompt: PromptConfig{
		Reprompt: false,
	},
	Commit: CommitConfig{
		Enabled: true,
	},
}

// LoadConfig loads configuration from various sources
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("scan.patterns", defaultConfig.Scan.Patterns)
	v.SetDefault("prompt.reprompt", defaultConfig.Prompt.Reprompt)
	v.SetDefault("commit.enabled", defaultConfig.Commit.Enabled)

	// Configuration file search paths
	v.SetConfigName("manifestneat")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // Current directory
	v.AddConfigPath("$HOME") // Home directory

	// Environment variables
	v.SetEnvPrefix("MANIFESTNEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file (optional); ignore error to use defaults
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}

// LoadProjectConfig loads project-specific configuration layered over the global config
func LoadProjectConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	projectConfigs := []string{
		".manifestneat.yaml",
		".manifestneat.yml",
		".manifestneat.json",
		"manifestneat.yaml",
		"manifestneat.yml",
		"manifestneat.json",
	}

	for _, configFile := range projectConfigs {
		if _, err := os.Stat(configFile); err == nil {
			v := viper.New()
			v.SetConfigFile(configFile)

			if err := v.ReadInConfig(); err != nil {
				continue // Try next config file
			}

			if err := v.Unmarshal(config); err != nil {
				continue
			}

			break
		}
	}

	return config, nil
}
