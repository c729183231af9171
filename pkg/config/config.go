// Package config resolves the repository configuration: base URL and
// optional basic-auth credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// LocalConfigFile is the project-local config filename, resolved
	// relative to the working directory.
	LocalConfigFile = "mvnget.toml"

	// DefaultRepositoryURL is used when no repository URL is configured.
	DefaultRepositoryURL = "https://repo1.maven.org/maven2"

	configDirName  = ".mvnget"
	configFileName = "config.toml"
	configPerms    = 0o600
)

// Repository holds the coordinates of the remote repository. Basic auth is
// sent only when both Username and Password are non-empty.
type Repository struct {
	URL      string `toml:"url" mapstructure:"url"`
	Username string `toml:"username,omitempty" mapstructure:"username"`
	Password string `toml:"password,omitempty" mapstructure:"password"`
}

// Config is the on-disk configuration file payload.
type Config struct {
	Repository Repository `toml:"repository" mapstructure:"repository"`
}

// Overrides carries flag-level values that take precedence over any
// configuration file.
type Overrides struct {
	URL      string
	Username string
	Password string
}

// LoadRepository resolves the repository configuration with Viper precedence:
// CLI flags > mvnget.toml (project-local) > ~/.mvnget/config.toml (global) >
// built-in default URL.
func LoadRepository(o Overrides) (Repository, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		return Repository{}, err
	}
	return loadRepository(o, globalPath, LocalConfigFile)
}

// loadRepository is the internal implementation that accepts explicit paths,
// making it testable without touching the real home directory.
func loadRepository(o Overrides, globalPath, localPath string) (Repository, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("repository.url", DefaultRepositoryURL)

	// Lowest priority: global config; ignore if missing.
	v.SetConfigFile(globalPath)
	_ = v.ReadInConfig()

	// Higher priority: project-local config.
	if _, err := os.Stat(localPath); err == nil {
		v.SetConfigFile(localPath)
		if err := v.MergeInConfig(); err != nil {
			return Repository{}, fmt.Errorf("reading %s: %w", localPath, err)
		}
	}

	// Highest priority: CLI flags.
	if o.URL != "" {
		v.Set("repository.url", o.URL)
	}
	if o.Username != "" {
		v.Set("repository.username", o.Username)
	}
	if o.Password != "" {
		v.Set("repository.password", o.Password)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return Repository{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	repo := cfg.Repository
	repo.URL = strings.TrimSuffix(repo.URL, "/")
	return repo, nil
}

// GlobalConfigPath returns the path to ~/.mvnget/config.toml.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Save writes the configuration to path in TOML form, creating the parent
// directory if necessary. The file is written owner-only since it may carry
// credentials.
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, configPerms); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
