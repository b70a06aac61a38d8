package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	corev1 "k8s.io/api/core/v1"

	"github.com/imamik/kindlab/internal/config"
	"github.com/imamik/kindlab/internal/helm"
	"github.com/imamik/kindlab/internal/hostcfg"
	"github.com/imamik/kindlab/internal/ui"
)

// Reconciler drives a service toward the requested lifecycle state. It is
// not transactional: a failure partway through leaves partial state that a
// re-run cleans up through the same guarded checks.
type Reconciler struct {
	kube     KubeClient
	helm     HelmClient
	cfg      *config.Config
	certsDir string
}

// NewReconciler creates a reconciler for the given cluster clients.
func NewReconciler(kube KubeClient, helmClient HelmClient, cfg *config.Config, certsDir string) *Reconciler {
	return &Reconciler{
		kube:     kube,
		helm:     helmClient,
		cfg:      cfg,
		certsDir: certsDir,
	}
}

// Install installs the service. An existing release is a warning no-op.
func (r *Reconciler) Install(ctx context.Context, svc Definition) error {
	exists, err := r.helm.ReleaseExists(svc.Namespace, svc.Release)
	if err != nil {
		return err
	}
	if exists {
		ui.Warnf("release %s already installed in namespace %s; nothing to do", svc.Release, svc.Namespace)
		return nil
	}

	if err := r.helm.EnsureRepo(svc.RepoName, svc.RepoURL); err != nil {
		return err
	}

	if err := r.kube.EnsureNamespace(ctx, svc.Namespace); err != nil {
		return err
	}

	if err := r.refreshTLSSecret(ctx, svc); err != nil {
		return err
	}

	spec, err := r.releaseSpec(svc)
	if err != nil {
		return err
	}

	ui.Infof("Installing %s (chart %s %s) into namespace %s", svc.Name, svc.Chart, svc.Version, svc.Namespace)
	if err := r.helm.Install(ctx, spec); err != nil {
		return err
	}

	if svc.PostInstall != nil {
		if err := svc.PostInstall(ctx, r.deps()); err != nil {
			return fmt.Errorf("post-install for %s failed: %w", svc.Name, err)
		}
	}

	ui.Okf("%s installed", svc.Name)
	return nil
}

// Upgrade upgrades the service. A missing release is a warning no-op.
func (r *Reconciler) Upgrade(ctx context.Context, svc Definition) error {
	exists, err := r.helm.ReleaseExists(svc.Namespace, svc.Release)
	if err != nil {
		return err
	}
	if !exists {
		ui.Warnf("release %s is not installed in namespace %s; nothing to upgrade", svc.Release, svc.Namespace)
		return nil
	}

	if err := r.refreshTLSSecret(ctx, svc); err != nil {
		return err
	}

	spec, err := r.releaseSpec(svc)
	if err != nil {
		return err
	}

	ui.Infof("Upgrading %s in namespace %s", svc.Name, svc.Namespace)
	if err := r.helm.Upgrade(ctx, spec); err != nil {
		return err
	}

	ui.Okf("%s upgraded", svc.Name)
	return nil
}

// Uninstall removes the release and its namespace. A missing release is a
// warning no-op.
func (r *Reconciler) Uninstall(ctx context.Context, svc Definition) error {
	exists, err := r.helm.ReleaseExists(svc.Namespace, svc.Release)
	if err != nil {
		return err
	}
	if !exists {
		ui.Warnf("release %s is not installed in namespace %s; nothing to uninstall", svc.Release, svc.Namespace)
		return nil
	}

	ui.Infof("Uninstalling %s from namespace %s", svc.Name, svc.Namespace)
	if err := r.helm.Uninstall(svc.Namespace, svc.Release); err != nil {
		return err
	}

	if err := r.kube.DeleteNamespace(ctx, svc.Namespace); err != nil {
		return err
	}

	ui.Okf("%s uninstalled", svc.Name)
	return nil
}

// Status reports the release, the namespace inventory, and pod readiness.
func (r *Reconciler) Status(ctx context.Context, svc Definition) (*Status, error) {
	status := &Status{
		Service:   svc.Name,
		Namespace: svc.Namespace,
	}

	rel, err := r.helm.ReleaseInfo(svc.Namespace, svc.Release)
	if err != nil {
		return nil, err
	}
	status.Release = rel

	nsExists, err := r.kube.NamespaceExists(ctx, svc.Namespace)
	if err != nil {
		return nil, err
	}
	if !nsExists {
		return status, nil
	}

	inventory, err := r.kube.CollectInventory(ctx, svc.Namespace)
	if err != nil {
		return nil, err
	}
	status.Inventory = inventory

	ready, err := r.kube.PodsReady(ctx, svc.Namespace, svc.Selector)
	if err != nil {
		return nil, err
	}
	status.Ready = ready

	if err := r.checkTLSFreshness(ctx, svc, status); err != nil {
		return nil, err
	}

	return status, nil
}

// checkTLSFreshness compares the in-cluster TLS secret against the local
// certificate file. Skipped when the service has no TLS secret, the secret
// is missing, or the local cert file is unreadable.
func (r *Reconciler) checkTLSFreshness(ctx context.Context, svc Definition, status *Status) error {
	if svc.TLSSecret == "" {
		return nil
	}

	exists, err := r.kube.SecretExists(ctx, svc.Namespace, svc.TLSSecret)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	certPEM, _, err := r.readCertificate()
	if err != nil {
		return nil
	}

	inCluster, err := r.kube.GetSecretData(ctx, svc.Namespace, svc.TLSSecret, corev1.TLSCertKey)
	if err != nil {
		return err
	}

	status.TLSSecret = svc.TLSSecret
	status.TLSCurrent = bytes.Equal(inCluster, certPEM)
	return nil
}

// Logs returns the recent logs of every pod under the service selector.
func (r *Reconciler) Logs(ctx context.Context, svc Definition, tailLines int64) (map[string]string, error) {
	pods, err := r.kube.GetPods(ctx, svc.Namespace, svc.Selector)
	if err != nil {
		return nil, err
	}
	if len(pods) == 0 {
		return nil, fmt.Errorf("no pods match selector %q in namespace %s", svc.Selector, svc.Namespace)
	}

	logs := make(map[string]string, len(pods))
	for i := range pods {
		podLogs, err := r.kube.PodLogs(ctx, svc.Namespace, pods[i].Name, tailLines)
		if err != nil {
			return nil, err
		}
		logs[pods[i].Name] = podLogs
	}
	return logs, nil
}

// Test runs the service's smoke test. Services without one report an error
// rather than a false pass.
func (r *Reconciler) Test(ctx context.Context, svc Definition) error {
	if svc.Smoke == nil {
		return fmt.Errorf("service %s has no smoke test", svc.Name)
	}

	exists, err := r.helm.ReleaseExists(svc.Namespace, svc.Release)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("service %s is not installed", svc.Name)
	}

	if err := svc.Smoke(ctx, r.deps()); err != nil {
		return fmt.Errorf("smoke test for %s failed: %w", svc.Name, err)
	}

	ui.Okf("%s smoke test passed", svc.Name)
	return nil
}

func (r *Reconciler) deps() *Deps {
	return &Deps{Kube: r.kube, Cfg: r.cfg}
}

// refreshTLSSecret replaces the service's TLS secret with the current
// certificate so the secret never holds a stale cert.
func (r *Reconciler) refreshTLSSecret(ctx context.Context, svc Definition) error {
	if svc.TLSSecret == "" {
		return nil
	}

	certPEM, keyPEM, err := r.readCertificate()
	if err != nil {
		return err
	}

	return r.kube.ReplaceTLSSecret(ctx, svc.Namespace, svc.TLSSecret, certPEM, keyPEM)
}

func (r *Reconciler) readCertificate() (certPEM, keyPEM []byte, err error) {
	certPath := filepath.Join(r.certsDir, hostcfg.CertFile)
	keyPath := filepath.Join(r.certsDir, hostcfg.KeyFile)

	certPEM, err = os.ReadFile(certPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read certificate %s (run 'kindlab domain configure' first): %w", certPath, err)
	}
	keyPEM, err = os.ReadFile(keyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read key %s (run 'kindlab domain configure' first): %w", keyPath, err)
	}
	return certPEM, keyPEM, nil
}

// releaseSpec renders the service's values template and assembles the Helm
// release spec. Rendering is in memory; no temp files are created.
func (r *Reconciler) releaseSpec(svc Definition) (helm.ReleaseSpec, error) {
	template, err := valuesTemplate(svc.ValuesFile)
	if err != nil {
		return helm.ReleaseSpec{}, err
	}

	vars := r.cfg.Vars()
	if svc.ExtraVars != nil {
		extra, err := svc.ExtraVars(r.cfg)
		if err != nil {
			return helm.ReleaseSpec{}, fmt.Errorf("failed to derive values variables for %s: %w", svc.Name, err)
		}
		for k, v := range extra {
			vars[k] = v
		}
	}

	values, err := helm.RenderValues(template, vars)
	if err != nil {
		return helm.ReleaseSpec{}, fmt.Errorf("failed to render values for %s: %w", svc.Name, err)
	}

	return helm.ReleaseSpec{
		Namespace: svc.Namespace,
		Release:   svc.Release,
		Chart: helm.ChartRef{
			RepoURL: svc.RepoURL,
			Name:    svc.Chart,
			Version: svc.Version,
		},
		Values:  values,
		Timeout: svc.Timeout,
	}, nil
}
