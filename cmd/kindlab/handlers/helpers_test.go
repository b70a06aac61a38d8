package handlers

import (
	"context"
	"testing"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/imamik/kindlab/internal/config"
	"github.com/imamik/kindlab/internal/k8s"
	"github.com/imamik/kindlab/internal/service"
	"github.com/imamik/kindlab/internal/util/prerequisites"
)

type fakeManager struct {
	exists    bool
	existsErr error
	created   []string
	deleted   []string
}

func (f *fakeManager) Exists(string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeManager) Create(name string, _ time.Duration) error {
	f.created = append(f.created, name)
	return nil
}

func (f *fakeManager) Delete(name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

type fakeReconciler struct {
	installed   []string
	upgraded    []string
	uninstalled []string
	tested      []string

	status *service.Status
	logs   map[string]string
}

func (f *fakeReconciler) Install(_ context.Context, svc service.Definition) error {
	f.installed = append(f.installed, svc.Name)
	return nil
}

func (f *fakeReconciler) Upgrade(_ context.Context, svc service.Definition) error {
	f.upgraded = append(f.upgraded, svc.Name)
	return nil
}

func (f *fakeReconciler) Uninstall(_ context.Context, svc service.Definition) error {
	f.uninstalled = append(f.uninstalled, svc.Name)
	return nil
}

func (f *fakeReconciler) Status(_ context.Context, svc service.Definition) (*service.Status, error) {
	if f.status != nil {
		return f.status, nil
	}
	return &service.Status{Service: svc.Name, Namespace: svc.Namespace}, nil
}

func (f *fakeReconciler) Logs(context.Context, service.Definition, int64) (map[string]string, error) {
	return f.logs, nil
}

func (f *fakeReconciler) Test(_ context.Context, svc service.Definition) error {
	f.tested = append(f.tested, svc.Name)
	return nil
}

type fakeConfigurator struct {
	configured []string
	cleaned    []string
}

func (f *fakeConfigurator) Configure(_ context.Context, domain string) error {
	f.configured = append(f.configured, domain)
	return nil
}

func (f *fakeConfigurator) Clean(_ context.Context, domain string) error {
	f.cleaned = append(f.cleaned, domain)
	return nil
}

// testEnv swaps every factory variable for fakes and restores them when the
// test finishes.
type testEnv struct {
	manager      *fakeManager
	reconciler   *fakeReconciler
	configurator *fakeConfigurator
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		manager:      &fakeManager{},
		reconciler:   &fakeReconciler{},
		configurator: &fakeConfigurator{},
	}

	origLoad := loadConfig
	origManager := newClusterManager
	origKube := newKubeClient
	origReconciler := newReconciler
	origConfigurator := newConfigurator
	origCheck := checkPrerequisites
	t.Cleanup(func() {
		loadConfig = origLoad
		newClusterManager = origManager
		newKubeClient = origKube
		newReconciler = origReconciler
		newConfigurator = origConfigurator
		checkPrerequisites = origCheck
	})

	loadConfig = func(string) (*config.Config, error) {
		return &config.Config{
			ClusterName:   "kind-lab",
			LocalDomain:   "kind.local",
			KafkaReplicas: 1,
		}, nil
	}
	newClusterManager = func() clusterManager { return env.manager }
	newKubeClient = func(string) (*k8s.Client, error) {
		return k8s.NewForClientset(fake.NewSimpleClientset(readyNode(), readyControllerPod())), nil
	}
	newReconciler = func(*config.Config) (reconciler, error) { return env.reconciler, nil }
	newConfigurator = func() domainConfigurator { return env.configurator }
	checkPrerequisites = func() *prerequisites.CheckResults { return &prerequisites.CheckResults{} }

	return env
}

func readyControllerPod() *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "ingress-nginx-controller-0",
			Namespace: "ingress-nginx",
			Labels:    map[string]string{"app.kubernetes.io/component": "controller"},
		},
		Status: corev1.PodStatus{
			Phase: corev1.PodRunning,
			Conditions: []corev1.PodCondition{
				{Type: corev1.PodReady, Status: corev1.ConditionTrue},
			},
		},
	}
}

func readyNode() *corev1.Node {
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "kind-lab-control-plane"},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
			},
		},
	}
}
