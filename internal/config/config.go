package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/utils"
)

// Config holds the resolved runtime settings.
type Config struct {
	// Store is a SQLite path, a *.json path, a postgres:// URL, a redis:// URL,
	// ":memory:", or "postgres" to use the keyring/env connection string.
	Store    string `yaml:"store"`
	Timezone string `yaml:"timezone"`
	Debug    bool   `yaml:"debug"`
}

// Overrides are values given on the command line. Empty strings and nil
// pointers mean "not given".
type Overrides struct {
	ConfigFile string
	Store      string
	Timezone   string
	Debug      *bool
}

func Default() Config {
	return Config{
		Store:    constants.DefaultStorePath,
		Timezone: constants.DefaultTimezone,
	}
}

// Load resolves settings with precedence flag > env > file > default. A
// missing config file is not an error unless it was named explicitly.
func Load(o Overrides) (Config, error) {
	cfg := Default()

	path := o.ConfigFile
	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigFile
	}
	path, err := ExpandPath(path)
	if err != nil {
		return cfg, err
	}

	if err := mergeFile(&cfg, path); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		return cfg, err
	}

	if err := mergeEnv(&cfg); err != nil {
		return cfg, err
	}

	if o.Store != "" {
		cfg.Store = o.Store
	}
	if o.Timezone != "" {
		cfg.Timezone = o.Timezone
	}
	if o.Debug != nil {
		cfg.Debug = *o.Debug
	}

	if cfg.Store, err = ExpandPath(cfg.Store); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if file.Store != "" {
		cfg.Store = file.Store
	}
	if file.Timezone != "" {
		cfg.Timezone = file.Timezone
	}
	cfg.Debug = cfg.Debug || file.Debug
	return nil
}

func mergeEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(constants.EnvStore)); v != "" {
		cfg.Store = v
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvTimezone)); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvDebug)); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s must be a boolean: %w", constants.EnvDebug, err)
		}
		cfg.Debug = debug
	}
	return nil
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Store) == "" {
		return errors.New("store location cannot be empty")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	return nil
}

// ConfigDir is the directory that holds logs: the store's directory for
// file stores, ~/.config/lifetrack otherwise.
func (c Config) ConfigDir() string {
	if IsFilePath(c.Store) {
		return filepath.Dir(c.Store)
	}
	return filepath.Join(homeDir(), ".config", constants.AppName)
}

// IsFilePath reports whether store names a local file rather than a URL,
// the keyring keyword, or the in-memory store.
func IsFilePath(store string) bool {
	if store == constants.MemoryStoreLocation || store == constants.PostgresKeyringLocation {
		return false
	}
	return !strings.Contains(store, "://")
}

// ExpandPath replaces a leading ~ with the user's home directory. URLs and
// other values pass through unchanged.
func ExpandPath(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
