package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/kindlab/internal/util/prerequisites"
)

func TestDoctorWithoutCluster(t *testing.T) {
	setupEnv(t)

	err := Doctor(context.Background(), ".env")
	require.NoError(t, err)
}

func TestDoctorWithCluster(t *testing.T) {
	env := setupEnv(t)
	env.manager.exists = true

	err := Doctor(context.Background(), ".env")
	require.NoError(t, err)
}

func TestDoctorReportsMissingRequiredTool(t *testing.T) {
	setupEnv(t)
	checkPrerequisites = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Missing: []prerequisites.Tool{{Name: "mkcert", Required: true, InstallURL: "https://example.com"}},
		}
	}

	err := Doctor(context.Background(), ".env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mkcert")
}
