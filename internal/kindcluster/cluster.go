// Package kindcluster manages the local Kind cluster through the Kind Go
// library, so cluster existence is a typed query instead of parsed CLI
// output.
package kindcluster

import (
	"fmt"
	"time"

	"sigs.k8s.io/kind/pkg/cluster"
)

// nodeConfig is the Kind cluster config. The control-plane node is labeled
// for the ingress controller and maps host ports 80/443 into the node so
// ingress traffic from the host reaches the cluster without a tunnel.
const nodeConfig = `kind: Cluster
apiVersion: kind.x-k8s.io/v1alpha4
nodes:
- role: control-plane
  kubeadmConfigPatches:
  - |
    kind: InitConfiguration
    nodeRegistration:
      kubeletExtraArgs:
        node-labels: "ingress-ready=true"
  extraPortMappings:
  - containerPort: 80
    hostPort: 80
    protocol: TCP
  - containerPort: 443
    hostPort: 443
    protocol: TCP
`

// provider abstracts the Kind cluster provider for tests.
type provider interface {
	List() ([]string, error)
	Create(name string, options ...cluster.CreateOption) error
	Delete(name, explicitKubeconfigPath string) error
}

// Manager creates and deletes the local Kind cluster.
type Manager struct {
	provider provider
}

// NewManager returns a Manager backed by the real Kind provider.
func NewManager() *Manager {
	return &Manager{provider: cluster.NewProvider()}
}

// newManagerWithProvider is used by tests to substitute a fake provider.
func newManagerWithProvider(p provider) *Manager {
	return &Manager{provider: p}
}

// Exists reports whether a Kind cluster with the given name exists.
func (m *Manager) Exists(name string) (bool, error) {
	clusters, err := m.provider.List()
	if err != nil {
		return false, fmt.Errorf("failed to list kind clusters: %w", err)
	}
	for _, c := range clusters {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}

// Create creates the cluster and blocks until the control plane is ready or
// waitReady elapses. The kubeconfig is merged into the default kubeconfig
// under the context kind-<name>.
func (m *Manager) Create(name string, waitReady time.Duration) error {
	err := m.provider.Create(name,
		cluster.CreateWithRawConfig([]byte(nodeConfig)),
		cluster.CreateWithWaitForReady(waitReady),
		cluster.CreateWithDisplayUsage(false),
		cluster.CreateWithDisplaySalutation(false),
	)
	if err != nil {
		return fmt.Errorf("failed to create kind cluster %s: %w", name, err)
	}
	return nil
}

// Delete deletes the cluster and removes its context from the default
// kubeconfig.
func (m *Manager) Delete(name string) error {
	if err := m.provider.Delete(name, ""); err != nil {
		return fmt.Errorf("failed to delete kind cluster %s: %w", name, err)
	}
	return nil
}
