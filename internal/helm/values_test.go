package helm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderValues(t *testing.T) {
	template := []byte(`
auth:
  username: ${ADMIN_USER}
  password: ${ADMIN_PASSWORD}
ingress:
  hostname: app.${LOCAL_DOMAIN}
`)
	vars := map[string]string{
		"ADMIN_USER":     "admin",
		"ADMIN_PASSWORD": "s3cret",
		"LOCAL_DOMAIN":   "kind.local",
	}

	values, err := RenderValues(template, vars)
	require.NoError(t, err)

	auth, ok := values["auth"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin", auth["username"])
	assert.Equal(t, "s3cret", auth["password"])

	ingress, ok := values["ingress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "app.kind.local", ingress["hostname"])
}

func TestRenderValuesUndefinedVariable(t *testing.T) {
	template := []byte("a: ${MISSING_ONE}\nb: ${MISSING_TWO}\nc: ${MISSING_ONE}\n")

	_, err := RenderValues(template, map[string]string{})
	require.Error(t, err)
	// Each missing variable is reported once, sorted.
	assert.Contains(t, err.Error(), "MISSING_ONE, MISSING_TWO")
}

func TestRenderValuesInvalidYAML(t *testing.T) {
	template := []byte("a: [unterminated\n")

	_, err := RenderValues(template, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse rendered values")
}

func TestRenderValuesEmptyTemplate(t *testing.T) {
	values, err := RenderValues(nil, map[string]string{})
	require.NoError(t, err)
	assert.Nil(t, values)
}
