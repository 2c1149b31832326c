package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	domainErrors "github.com/thomas-vilte/relnotes/internal/errors"
)

type Config struct {
	Owner     string `toml:"owner"`
	Repo      string `toml:"repo"`
	CargoRepo string `toml:"cargo_repo"`
	// Token is normally taken from GITHUB_TOKEN rather than stored on disk.
	Token    string `toml:"token,omitempty"`
	Language string `toml:"language"`

	IncludeCargo   bool     `toml:"include_cargo"`
	RelnotesLabels []string `toml:"relnotes_labels"`
	SkipLabels     []string `toml:"skip_labels"`

	PathFile string `toml:"-"`
}

const (
	defaultOwner     = "rust-lang"
	defaultRepo      = "rust"
	defaultCargoRepo = "cargo"

	configDirName  = ".relnotes"
	configFileName = "config.toml"
)

// TokenEnvVars are checked in order for the GitHub token.
var TokenEnvVars = []string{"GITHUB_TOKEN", "GITHUB_API_KEY"}

func DefaultRelnotesLabels() []string {
	return []string{"relnotes", "relnotes-perf", "finished-final-comment-period", "needs-fcp"}
}

// DefaultSkipLabels excludes backports, which shipped in the previous stable, and rollups.
func DefaultSkipLabels() []string {
	return []string{"beta-accepted", "rollup"}
}

func DefaultConfig() *Config {
	return &Config{
		Owner:          defaultOwner,
		Repo:           defaultRepo,
		CargoRepo:      defaultCargoRepo,
		Language:       LangEN,
		IncludeCargo:   true,
		RelnotesLabels: DefaultRelnotesLabels(),
		SkipLabels:     DefaultSkipLabels(),
	}
}

// DefaultPath returns ~/.relnotes/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	if home == "" {
		return "", errors.New("home directory is empty")
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// LoadConfig reads the TOML file at path (the default path when empty), falls back
// to defaults when it does not exist, then applies .env and environment overrides.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, domainErrors.ErrConfigInvalid.WithError(err).WithContext("path", path)
		}
	}
	cfg.PathFile = path

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	for _, key := range TokenEnvVars {
		if v := os.Getenv(key); v != "" {
			cfg.Token = v
			return
		}
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Owner == "":
		return domainErrors.ErrConfigInvalid.WithContext("field", "owner")
	case c.Repo == "":
		return domainErrors.ErrConfigInvalid.WithContext("field", "repo")
	case c.IncludeCargo && c.CargoRepo == "":
		return domainErrors.ErrConfigInvalid.WithContext("field", "cargo_repo")
	case len(c.RelnotesLabels) == 0:
		return domainErrors.ErrConfigInvalid.WithContext("field", "relnotes_labels")
	case c.Language == "":
		return domainErrors.ErrConfigInvalid.WithContext("field", "language")
	}
	return nil
}

// SaveConfig writes the configuration to its PathFile. The token is never written.
func SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.PathFile == "" {
		return errors.New("config file path is not set")
	}

	out := *cfg
	out.Token = ""

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.PathFile), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(cfg.PathFile, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// RequireToken returns ErrTokenMissing when no token is configured.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return domainErrors.ErrTokenMissing
	}
	return nil
}
