package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
database:
  host: db.local
  port: 5432
  user: collex
  password: secret
  dbname: collex
  sslmode: disable
upload:
  dir: /var/data/uploads
storage:
  backend: s3
aws:
  region: eu-west-1
  s3_bucket: photos
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/var/data/uploads", cfg.Upload.Dir)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "photos", cfg.AWS.S3Bucket)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t,
		"host=db.local port=5432 user=collex password=secret dbname=collex sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, "local", cfg.Storage.Backend)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	_, err := Load(path)
	require.Error(t, err)
}
