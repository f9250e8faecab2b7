package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ekaya-inc/ekaya-rekey/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-rekey/pkg/models"
)

// DefaultPath is the config file read when no path is given and it exists.
const DefaultPath = "config.yaml"

// Config holds all configuration for ekaya-rekey.
// Configuration can come from a YAML file or environment variables.
// Environment variables always override YAML values.
type Config struct {
	// InputRoot is the serialized tree to read. It is never modified.
	InputRoot string `yaml:"input_root" env:"REKEY_INPUT_ROOT" env-default:""`
	// OutputRoot receives the rewritten copy and the change log.
	OutputRoot string `yaml:"output_root" env:"REKEY_OUTPUT_ROOT" env-default:""`

	// DatabasesDir is the subdirectory of OutputRoot whose directory names are renamed.
	DatabasesDir string `yaml:"databases_dir" env:"REKEY_DATABASES_DIR" env-default:"databases"`
	// LogFile is the change log name, relative to OutputRoot.
	LogFile string `yaml:"log_file" env:"REKEY_LOG_FILE" env-default:"log.txt"`
	// Extensions selects which files are documents.
	Extensions []string `yaml:"extensions" env:"REKEY_EXTENSIONS" env-separator:"," env-default:".yaml,.yml"`

	LogLevel string `yaml:"log_level" env:"REKEY_LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Rename holds the database and schema names. Missing values are prompted for.
	Rename RenameConfig `yaml:"rename"`
}

// RenameConfig holds the database/schema rename.
type RenameConfig struct {
	OldDatabase string `yaml:"old_database" env:"REKEY_OLD_DATABASE" env-default:""`
	OldSchema   string `yaml:"old_schema" env:"REKEY_OLD_SCHEMA" env-default:""`
	NewDatabase string `yaml:"new_database" env:"REKEY_NEW_DATABASE" env-default:""`
	NewSchema   string `yaml:"new_schema" env:"REKEY_NEW_SCHEMA" env-default:""`
}

// Pair converts the rename configuration into a models.RenamePair.
func (r RenameConfig) Pair() models.RenamePair {
	return models.RenamePair{
		OldDatabase: r.OldDatabase,
		OldSchema:   r.OldSchema,
		NewDatabase: r.NewDatabase,
		NewSchema:   r.NewSchema,
	}
}

// SetPair stores p back into the rename configuration.
func (r *RenameConfig) SetPair(p models.RenamePair) {
	r.OldDatabase = p.OldDatabase
	r.OldSchema = p.OldSchema
	r.NewDatabase = p.NewDatabase
	r.NewSchema = p.NewSchema
}

// Load reads configuration from path with environment variable overrides.
// An empty path falls back to DefaultPath if that file exists, and to
// environment variables alone otherwise. An explicit path must exist.
func Load(version, path string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.normalize()
	return cfg, nil
}

// normalize cleans up values after loading.
func (c *Config) normalize() {
	exts := c.Extensions[:0]
	for _, ext := range c.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	c.Extensions = exts
}

// Validate checks that the configuration can drive a run.
// It must be called after missing rename values have been collected.
func (c *Config) Validate() error {
	if c.InputRoot == "" {
		return errors.New("input_root is required")
	}
	if c.OutputRoot == "" {
		return errors.New("output_root is required")
	}

	in, err := filepath.Abs(c.InputRoot)
	if err != nil {
		return fmt.Errorf("invalid input_root: %w", err)
	}
	out, err := filepath.Abs(c.OutputRoot)
	if err != nil {
		return fmt.Errorf("invalid output_root: %w", err)
	}
	if in == out {
		return apperrors.ErrSameRoot
	}
	// Copying into a subdirectory of the input would copy the copy.
	if rel, err := filepath.Rel(in, out); err == nil && filepath.IsLocal(rel) {
		return apperrors.ErrNestedRoot
	}

	// An empty old name matches every value as a substring.
	if c.Rename.OldDatabase == "" {
		return fmt.Errorf("%w: old database name is required", apperrors.ErrMissingRename)
	}
	if c.Rename.OldSchema == "" {
		return fmt.Errorf("%w: old schema name is required", apperrors.ErrMissingRename)
	}

	if len(c.Extensions) == 0 {
		return errors.New("at least one document extension is required")
	}
	if c.LogFile == "" {
		return errors.New("log_file is required")
	}
	return nil
}

// LogPath returns the change log location.
func (c *Config) LogPath() string {
	return filepath.Join(c.OutputRoot, c.LogFile)
}

// DatabasesPath returns the directory subject to directory renaming.
func (c *Config) DatabasesPath() string {
	return filepath.Join(c.OutputRoot, c.DatabasesDir)
}
