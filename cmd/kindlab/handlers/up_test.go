package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kindlab/internal/util/prerequisites"
)

func TestUpCreatesCluster(t *testing.T) {
	env := setupEnv(t)

	err := Up(context.Background(), ".env")
	require.NoError(t, err)

	assert.Equal(t, []string{"kind-lab"}, env.manager.created)
	// The ingress controller goes in right after the cluster is up.
	assert.Equal(t, []string{"ingress-nginx"}, env.reconciler.installed)
}

func TestUpExistingClusterIsNotRecreated(t *testing.T) {
	env := setupEnv(t)
	env.manager.exists = true

	err := Up(context.Background(), ".env")
	require.NoError(t, err)

	assert.Empty(t, env.manager.created)
	assert.Equal(t, []string{"ingress-nginx"}, env.reconciler.installed)
}

func TestUpMissingRequiredTool(t *testing.T) {
	env := setupEnv(t)
	checkPrerequisites = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Missing: []prerequisites.Tool{{Name: "docker", Required: true, InstallURL: "https://docs.docker.com"}},
		}
	}

	err := Up(context.Background(), ".env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docker")
	assert.Empty(t, env.manager.created)
}

func TestUpMissingOptionalToolProceeds(t *testing.T) {
	env := setupEnv(t)
	checkPrerequisites = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Missing: []prerequisites.Tool{{Name: "kubectl", Required: false}},
		}
	}

	err := Up(context.Background(), ".env")
	require.NoError(t, err)
	assert.Equal(t, []string{"kind-lab"}, env.manager.created)
}
