package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceArg(t *testing.T) {
	cmd := Install()

	require.Error(t, cmd.Args(cmd, nil))
	require.Error(t, cmd.Args(cmd, []string{"minio", "redis"}))

	err := cmd.Args(cmd, []string{"not-a-service"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown service")

	assert.NoError(t, cmd.Args(cmd, []string{"minio"}))
	// ingress-nginx is addressable even though `up` owns its lifecycle.
	assert.NoError(t, cmd.Args(cmd, []string{"ingress-nginx"}))
}

func TestStatusAcceptsNoArgs(t *testing.T) {
	cmd := Status()
	assert.NoError(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"minio"}))
	assert.Error(t, cmd.Args(cmd, []string{"minio", "redis"}))
}

func TestServiceCommandHelpListsServices(t *testing.T) {
	for _, cmd := range []struct {
		name string
		long string
	}{
		{"install", Install().Long},
		{"upgrade", Upgrade().Long},
		{"uninstall", Uninstall().Long},
		{"status", Status().Long},
	} {
		assert.Contains(t, cmd.long, "minio", "%s help should list services", cmd.name)
		assert.Contains(t, cmd.long, "argocd", "%s help should list services", cmd.name)
	}
}
