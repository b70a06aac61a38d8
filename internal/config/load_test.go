package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultClusterName, cfg.ClusterName)
	assert.Equal(t, DefaultLocalDomain, cfg.LocalDomain)
	assert.Equal(t, "minioadmin", cfg.MinioRootUser)
	assert.Equal(t, 1, cfg.KafkaReplicas)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeEnvFile(t, `
# local overrides
CLUSTER_NAME=mylab
LOCAL_DOMAIN=dev.local
KAFKA_REPLICAS=3
POSTGRES_PASSWORD=hunter2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mylab", cfg.ClusterName)
	assert.Equal(t, "dev.local", cfg.LocalDomain)
	assert.Equal(t, 3, cfg.KafkaReplicas)
	assert.Equal(t, "hunter2", cfg.PostgresPassword)
	// Untouched keys keep their defaults.
	assert.Equal(t, "postgres", cfg.PostgresUser)
}

func TestLoadGeneratesMissingCredentials(t *testing.T) {
	path := writeEnvFile(t, "MINIO_ROOT_PASSWORD=pinned\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pinned", cfg.MinioRootPassword)
	assert.NotEmpty(t, cfg.PostgresPassword)
	assert.NotEmpty(t, cfg.RedisPassword)
	assert.NotEmpty(t, cfg.ArgoCDAdminPassword)
	assert.NotEmpty(t, cfg.JupyterAdminPassword)
	assert.Len(t, cfg.PostgresPassword, 24)
}

func TestLoadInvalidConfig(t *testing.T) {
	path := writeEnvFile(t, "CLUSTER_NAME=Not_A_Label\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadCredentialsAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.NotEqual(t, cfg.PostgresPassword, cfg.RedisPassword)
	assert.NotEqual(t, cfg.RedisPassword, cfg.ArgoCDAdminPassword)
}
