// Package handlers implements the command logic behind the kindlab CLI.
// Commands parse flags and delegate here; handlers wire clients together
// through factory variables that tests replace with fakes.
package handlers

import (
	"context"
	"time"

	"github.com/imamik/kindlab/internal/config"
	"github.com/imamik/kindlab/internal/helm"
	"github.com/imamik/kindlab/internal/hostcfg"
	"github.com/imamik/kindlab/internal/k8s"
	"github.com/imamik/kindlab/internal/kindcluster"
	"github.com/imamik/kindlab/internal/service"
	"github.com/imamik/kindlab/internal/util/prerequisites"
)

// clusterManager abstracts Kind cluster lifecycle for tests.
type clusterManager interface {
	Exists(name string) (bool, error)
	Create(name string, waitReady time.Duration) error
	Delete(name string) error
}

// reconciler abstracts the service lifecycle reconciler for tests.
type reconciler interface {
	Install(ctx context.Context, svc service.Definition) error
	Upgrade(ctx context.Context, svc service.Definition) error
	Uninstall(ctx context.Context, svc service.Definition) error
	Status(ctx context.Context, svc service.Definition) (*service.Status, error)
	Logs(ctx context.Context, svc service.Definition, tailLines int64) (map[string]string, error)
	Test(ctx context.Context, svc service.Definition) error
}

// domainConfigurator abstracts the host configurator for tests.
type domainConfigurator interface {
	Configure(ctx context.Context, domain string) error
	Clean(ctx context.Context, domain string) error
}

// Factory variables, replaced in tests.
var (
	loadConfig = config.Load

	newClusterManager = func() clusterManager {
		return kindcluster.NewManager()
	}

	newKubeClient = func(kubeContext string) (*k8s.Client, error) {
		return k8s.NewClient(kubeContext)
	}

	newReconciler = func(cfg *config.Config) (reconciler, error) {
		kube, err := newKubeClient(cfg.KubeContext())
		if err != nil {
			return nil, err
		}
		helmClient := helm.NewClient(kube.RESTConfig())
		return service.NewReconciler(kube, helmClient, cfg, hostcfg.DefaultCertsDir), nil
	}

	newConfigurator = func() domainConfigurator {
		return hostcfg.NewConfigurator()
	}

	checkPrerequisites = func() *prerequisites.CheckResults {
		return prerequisites.Check(prerequisites.DefaultTools())
	}
)
