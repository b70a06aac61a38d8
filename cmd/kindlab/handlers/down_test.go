package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDown(t *testing.T) {
	env := setupEnv(t)
	env.manager.exists = true

	err := Down(context.Background(), ".env")
	require.NoError(t, err)
	assert.Equal(t, []string{"kind-lab"}, env.manager.deleted)
}

func TestDownMissingCluster(t *testing.T) {
	env := setupEnv(t)

	err := Down(context.Background(), ".env")
	require.NoError(t, err)
	assert.Empty(t, env.manager.deleted)
}
