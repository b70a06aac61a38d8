package kindcluster

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/kind/pkg/cluster"
)

type fakeProvider struct {
	clusters   []string
	listErr    error
	createErr  error
	deleteErr  error
	created    []string
	createdOps int
	deleted    []string
}

func (f *fakeProvider) List() ([]string, error) {
	return f.clusters, f.listErr
}

func (f *fakeProvider) Create(name string, options ...cluster.CreateOption) error {
	f.created = append(f.created, name)
	f.createdOps = len(options)
	return f.createErr
}

func (f *fakeProvider) Delete(name, explicitKubeconfigPath string) error {
	f.deleted = append(f.deleted, name)
	return f.deleteErr
}

func TestExists(t *testing.T) {
	p := &fakeProvider{clusters: []string{"other", "kind-lab"}}
	m := newManagerWithProvider(p)

	exists, err := m.Exists("kind-lab")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = m.Exists("missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsListError(t *testing.T) {
	p := &fakeProvider{listErr: errors.New("docker not running")}
	m := newManagerWithProvider(p)

	_, err := m.Exists("kind-lab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list kind clusters")
}

func TestCreate(t *testing.T) {
	p := &fakeProvider{}
	m := newManagerWithProvider(p)

	err := m.Create("kind-lab", 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []string{"kind-lab"}, p.created)
	// Raw config, wait, and the two display options.
	assert.Equal(t, 4, p.createdOps)
}

func TestCreateError(t *testing.T) {
	p := &fakeProvider{createErr: errors.New("node image pull failed")}
	m := newManagerWithProvider(p)

	err := m.Create("kind-lab", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create kind cluster kind-lab")
}

func TestDelete(t *testing.T) {
	p := &fakeProvider{}
	m := newManagerWithProvider(p)

	require.NoError(t, m.Delete("kind-lab"))
	assert.Equal(t, []string{"kind-lab"}, p.deleted)
}

func TestDeleteError(t *testing.T) {
	p := &fakeProvider{deleteErr: errors.New("boom")}
	m := newManagerWithProvider(p)

	err := m.Delete("kind-lab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete kind cluster kind-lab")
}
