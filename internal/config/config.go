// Package config loads tpp settings from <dir>/.tpp/config.yaml and TPP_*
// environment variables. Environment variables take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config represents the tpp configuration.
type Config struct {
	Storage  StorageConfig `mapstructure:"storage" yaml:"storage" validate:"required"`
	LogLevel string        `mapstructure:"log_level" yaml:"log_level" validate:"required,oneof=debug info warn error"`
	DeviceID string        `mapstructure:"device_id" yaml:"device_id" validate:"required,max=64"` // Recorded as the actor in the activity log
}

// StorageConfig selects where calendar data lives. The activity log always
// stays in the local SQLite database.
type StorageConfig struct {
	Backend     string `mapstructure:"backend" yaml:"backend" validate:"required,oneof=sqlite postgres s3"`
	SQLitePath  string `mapstructure:"sqlite_path" yaml:"sqlite_path,omitempty"` // Empty means ~/.tpp/tpp.db
	PostgresURL string `mapstructure:"postgres_url" yaml:"postgres_url,omitempty" validate:"required_if=Backend postgres"`
	S3Bucket    string `mapstructure:"s3_bucket" yaml:"s3_bucket,omitempty" validate:"required_if=Backend s3"`
	S3Prefix    string `mapstructure:"s3_prefix" yaml:"s3_prefix,omitempty"`
	AWSRegion   string `mapstructure:"aws_region" yaml:"aws_region,omitempty"`
	AWSProfile  string `mapstructure:"aws_profile" yaml:"aws_profile,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Storage:  StorageConfig{Backend: BackendSQLite},
		LogLevel: "info",
		DeviceID: "local",
	}
}

// Path returns the config file location under dir.
func Path(dir string) string {
	return filepath.Join(dir, ".tpp", "config.yaml")
}

// Load reads the config file under dir if one exists, applies TPP_*
// environment overrides (TPP_STORAGE_BACKEND, TPP_LOG_LEVEL, ...) and
// validates the result.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	path := Path(dir)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	v.SetEnvPrefix("TPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its field rules.
func Validate(cfg *Config) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SaveConfig writes cfg as YAML to <dir>/.tpp/config.yaml.
func SaveConfig(dir string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	tppDir := filepath.Dir(Path(dir))
	if err := os.MkdirAll(tppDir, 0755); err != nil {
		return fmt.Errorf("failed to create .tpp dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// setDefaults registers every key so AutomaticEnv overrides reach Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.postgres_url", d.Storage.PostgresURL)
	v.SetDefault("storage.s3_bucket", d.Storage.S3Bucket)
	v.SetDefault("storage.s3_prefix", d.Storage.S3Prefix)
	v.SetDefault("storage.aws_region", d.Storage.AWSRegion)
	v.SetDefault("storage.aws_profile", d.Storage.AWSProfile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("device_id", d.DeviceID)
}
