package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for gitshell.
type Config struct {
	Git   GitConfig     `yaml:"git"`
	Clone CloneDefaults `yaml:"clone"`
}

// GitConfig locates the external git binary.
type GitConfig struct {
	BinPath string `yaml:"bin_path"` // defaults to "git" resolved via PATH
}

// CloneDefaults are applied to clone operations when the caller leaves the
// corresponding option unset.
type CloneDefaults struct {
	Branch       string `yaml:"branch"`
	Depth        int    `yaml:"depth"`
	SingleBranch bool   `yaml:"single_branch"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Git: GitConfig{BinPath: "git"},
	}
}

// Load reads and parses a configuration file, expanding ${ENV_VAR}
// placeholders. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(expandEnv(data), cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}
	if cfg.Git.BinPath == "" {
		cfg.Git.BinPath = "git"
	}
	if cfg.Clone.Depth < 0 {
		return nil, fmt.Errorf("clone.depth must not be negative, got %d", cfg.Clone.Depth)
	}

	return cfg, nil
}

// LoadDefault searches the standard locations and loads the first config
// file found, falling back to the built-in defaults.
func LoadDefault() *Config {
	path, err := FindConfigFile()
	if err != nil {
		return Default()
	}

	cfg, loadErr := Load(path)
	if loadErr != nil {
		logger.Warnf("Ignoring invalid config file %q: %v", path, loadErr)
		return Default()
	}

	logger.Debugf("Loaded configuration from %s", path)
	return cfg
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitshell.yaml",
		".gitshell.yml",
		"gitshell.yaml",
		"gitshell.yml",
	}

	for _, location := range locations {
		for _, pattern := range patterns {
			candidate := filepath.Join(location, pattern)
			if _, statErr := os.Stat(candidate); statErr == nil {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("no configuration file found")
}

// expandEnv replaces ${VAR_NAME} placeholders with environment values.
func expandEnv(data []byte) []byte {
	return envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}
