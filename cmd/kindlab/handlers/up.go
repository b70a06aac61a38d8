package handlers

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/imamik/kindlab/internal/hostcfg"
	"github.com/imamik/kindlab/internal/k8s"
	"github.com/imamik/kindlab/internal/service"
	"github.com/imamik/kindlab/internal/statuspage"
	"github.com/imamik/kindlab/internal/ui"
)

// Timeouts for cluster creation and readiness waits.
const (
	clusterReadyTimeout = 5 * time.Minute
	nodesReadyTimeout   = 2 * time.Minute
	ingressReadyTimeout = 2 * time.Minute
)

// Up brings the environment up: prerequisite checks, Kind cluster,
// ingress controller, and the status page. Every step is idempotent, so
// re-running `up` after a partial failure resumes where it left off.
func Up(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	results := checkPrerequisites()
	for _, missing := range results.Missing {
		if !missing.Required {
			ui.Warnf("optional tool %s not found: %s", missing.Name, missing.Description)
		}
	}
	if err := results.Error(); err != nil {
		return err
	}

	manager := newClusterManager()
	exists, err := manager.Exists(cfg.ClusterName)
	if err != nil {
		return err
	}
	if exists {
		ui.Warnf("cluster %s already exists; skipping creation", cfg.ClusterName)
	} else {
		ui.Infof("Creating Kind cluster %s", cfg.ClusterName)
		if err := manager.Create(cfg.ClusterName, clusterReadyTimeout); err != nil {
			return err
		}
	}

	kube, err := newKubeClient(cfg.KubeContext())
	if err != nil {
		return err
	}

	if err := kube.WaitForNodesReady(ctx, nodesReadyTimeout); err != nil {
		return fmt.Errorf("cluster nodes did not become ready: %w", err)
	}

	rec, err := newReconciler(cfg)
	if err != nil {
		return err
	}

	if err := rec.Install(ctx, service.IngressNginx); err != nil {
		return err
	}

	if err := kube.WaitForPodsReady(ctx, service.IngressNginx.Namespace, service.IngressNginx.Selector, ingressReadyTimeout); err != nil {
		return fmt.Errorf("ingress controller did not become ready: %w", err)
	}

	if err := deployStatusPage(ctx, cfg.LocalDomain, kube); err != nil {
		return err
	}

	ui.Okf("Environment is up; services install with 'kindlab install <service>'")
	return nil
}

// deployStatusPage deploys the landing page when certificates exist. A
// cluster without host TLS is still useful, so a missing certificate is a
// warning, not a failure.
func deployStatusPage(ctx context.Context, domain string, kube *k8s.Client) error {
	certPath, keyPath := hostcfg.NewConfigurator().CertPaths()

	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		if os.IsNotExist(err) {
			ui.Warnf("no certificate at %s; skipping status page (run 'sudo kindlab domain configure')", certPath)
			return nil
		}
		return fmt.Errorf("failed to read certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	log.Printf("Deploying status page at https://status.%s", domain)
	return statuspage.Deploy(ctx, kube, domain, certPEM, keyPEM)
}
