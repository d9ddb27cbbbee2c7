package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every TPP_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"TPP_STORAGE_BACKEND", "TPP_STORAGE_SQLITE_PATH", "TPP_STORAGE_POSTGRES_URL",
		"TPP_STORAGE_S3_BUCKET", "TPP_STORAGE_S3_PREFIX", "TPP_STORAGE_AWS_REGION",
		"TPP_STORAGE_AWS_PROFILE", "TPP_LOG_LEVEL", "TPP_DEVICE_ID",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".tpp"), 0755))
	require.NoError(t, os.WriteFile(Path(dir), []byte(`
storage:
  backend: s3
  s3_bucket: my-cycle-data
  s3_prefix: phone
  aws_region: eu-west-1
log_level: DEBUG
device_id: phone
`), 0644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, BackendS3, cfg.Storage.Backend)
	assert.Equal(t, "my-cycle-data", cfg.Storage.S3Bucket)
	assert.Equal(t, "phone", cfg.Storage.S3Prefix)
	assert.Equal(t, "eu-west-1", cfg.Storage.AWSRegion)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "phone", cfg.DeviceID)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, SaveConfig(dir, Default()))
	t.Setenv("TPP_STORAGE_BACKEND", "postgres")
	t.Setenv("TPP_STORAGE_POSTGRES_URL", "postgres://tpp@localhost/tpp?sslmode=disable")
	t.Setenv("TPP_DEVICE_ID", "laptop")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "postgres://tpp@localhost/tpp?sslmode=disable", cfg.Storage.PostgresURL)
	assert.Equal(t, "laptop", cfg.DeviceID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown backend", map[string]string{"TPP_STORAGE_BACKEND": "dynamo"}, "Config.Storage.Backend"},
		{"postgres without url", map[string]string{"TPP_STORAGE_BACKEND": "postgres"}, "Config.Storage.PostgresURL"},
		{"s3 without bucket", map[string]string{"TPP_STORAGE_BACKEND": "s3"}, "Config.Storage.S3Bucket"},
		{"bad log level", map[string]string{"TPP_LOG_LEVEL": "loud"}, "Config.LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(t.TempDir())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg := Default()
	cfg.Storage.SQLitePath = filepath.Join(dir, "data.db")
	cfg.DeviceID = "tablet"

	require.NoError(t, SaveConfig(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfig_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Storage.Backend = "floppy"

	assert.Error(t, SaveConfig(dir, cfg))
	_, err := os.Stat(Path(dir))
	assert.True(t, os.IsNotExist(err))
}
