// Package service implements the idempotent lifecycle reconciler for the
// Helm-managed services in the local development environment. Every
// mutating operation is guarded by typed existence checks (namespace via
// the Kubernetes API, release via the Helm SDK) so re-running any
// operation is safe.
package service

import (
	"context"
	"time"

	"helm.sh/helm/v3/pkg/release"
	corev1 "k8s.io/api/core/v1"

	"github.com/imamik/kindlab/internal/config"
	"github.com/imamik/kindlab/internal/helm"
	"github.com/imamik/kindlab/internal/k8s"
)

// KubeClient is the subset of Kubernetes operations the reconciler needs.
type KubeClient interface {
	NamespaceExists(ctx context.Context, name string) (bool, error)
	EnsureNamespace(ctx context.Context, name string) error
	DeleteNamespace(ctx context.Context, name string) error
	ReplaceTLSSecret(ctx context.Context, namespace, name string, certPEM, keyPEM []byte) error
	SecretExists(ctx context.Context, namespace, name string) (bool, error)
	GetSecretData(ctx context.Context, namespace, name, key string) ([]byte, error)
	PodsReady(ctx context.Context, namespace, labelSelector string) (bool, error)
	GetPods(ctx context.Context, namespace, labelSelector string) ([]corev1.Pod, error)
	CollectInventory(ctx context.Context, namespace string) (*k8s.Inventory, error)
	PodLogs(ctx context.Context, namespace, name string, tailLines int64) (string, error)
	ExecInPod(ctx context.Context, namespace, pod, container string, command []string) (string, error)
	ForwardServicePort(ctx context.Context, namespace, labelSelector string, remotePort int) (*k8s.PortForward, error)
}

// HelmClient is the subset of Helm operations the reconciler needs.
type HelmClient interface {
	ReleaseExists(namespace, releaseName string) (bool, error)
	Install(ctx context.Context, spec helm.ReleaseSpec) error
	Upgrade(ctx context.Context, spec helm.ReleaseSpec) error
	Uninstall(namespace, releaseName string) error
	ReleaseInfo(namespace, releaseName string) (*release.Release, error)
	EnsureRepo(name, url string) error
}

// Deps bundles the clients and configuration passed to hooks and smoke
// tests.
type Deps struct {
	Kube KubeClient
	Cfg  *config.Config
}

// Definition describes one managed service: its Helm release, namespace,
// TLS secret, and optional post-install hook and smoke test.
type Definition struct {
	// Name is the CLI-facing service name.
	Name string

	// Namespace the service is installed into. One namespace per service.
	Namespace string

	// Release is the Helm release name.
	Release string

	// RepoName and RepoURL identify the chart repository.
	RepoName string
	RepoURL  string

	// Chart and Version pin the chart.
	Chart   string
	Version string

	// TLSSecret is the name of the TLS secret refreshed before every
	// install and upgrade. Empty means the service has no TLS secret.
	TLSSecret string

	// Selector matches the service's pods for readiness checks and logs.
	Selector string

	// ValuesFile names the embedded values template.
	ValuesFile string

	// Timeout bounds the Helm install/upgrade wait. Zero means the Helm
	// client default.
	Timeout time.Duration

	// ExtraVars derives additional template variables from the config,
	// for values the raw config cannot express directly (e.g. hashes).
	ExtraVars func(cfg *config.Config) (map[string]string, error)

	// PostInstall runs after a successful install to create resources the
	// chart does not own (databases, buckets).
	PostInstall func(ctx context.Context, deps *Deps) error

	// Smoke verifies the running service end to end.
	Smoke func(ctx context.Context, deps *Deps) error
}

// Status is the report returned by the status operation.
type Status struct {
	Service   string
	Namespace string

	// Release is nil when no Helm release exists.
	Release *release.Release

	// Inventory is nil when the namespace does not exist.
	Inventory *k8s.Inventory

	// Ready reports whether all pods under the service selector are
	// Running and Ready.
	Ready bool

	// TLSSecret names the TLS secret checked for freshness. Empty when
	// the service has no TLS secret or the namespace does not exist.
	TLSSecret string

	// TLSCurrent reports whether the in-cluster certificate matches the
	// local cert file. Only meaningful when TLSSecret is set.
	TLSCurrent bool
}
