package service

import (
	"embed"
	"fmt"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/imamik/kindlab/internal/config"
)

//go:embed values/*.yaml
var valuesFS embed.FS

// valuesTemplate returns the raw embedded values template for a service.
func valuesTemplate(name string) ([]byte, error) {
	data, err := valuesFS.ReadFile("values/" + name)
	if err != nil {
		return nil, fmt.Errorf("no values template %s: %w", name, err)
	}
	return data, nil
}

// DefaultTLSSecret is the TLS secret name shared by services that serve
// HTTPS through the ingress controller.
const DefaultTLSSecret = "local-dev-tls"

// IngressNginx is the ingress controller installed by `kindlab up`. It is
// part of the catalog so status/logs work on it, but `up` owns its
// lifecycle.
var IngressNginx = Definition{
	Name:       "ingress-nginx",
	Namespace:  "ingress-nginx",
	Release:    "ingress-nginx",
	RepoName:   "ingress-nginx",
	RepoURL:    "https://kubernetes.github.io/ingress-nginx",
	Chart:      "ingress-nginx",
	Version:    "4.12.0",
	Selector:   "app.kubernetes.io/component=controller",
	ValuesFile: "ingress-nginx.yaml",
}

// catalog lists every managed service. Namespaces are named after the
// service; one service per namespace.
var catalog = []Definition{
	{
		Name:       "argocd",
		Namespace:  "argocd",
		Release:    "argocd",
		RepoName:   "argo",
		RepoURL:    "https://argoproj.github.io/argo-helm",
		Chart:      "argo-cd",
		Version:    "7.7.11",
		TLSSecret:  DefaultTLSSecret,
		Selector:   "app.kubernetes.io/name=argocd-server",
		ValuesFile: "argocd.yaml",
		ExtraVars:  argocdVars,
	},
	{
		Name:        "minio",
		Namespace:   "minio",
		Release:     "minio",
		RepoName:    "minio",
		RepoURL:     "https://charts.min.io/",
		Chart:       "minio",
		Version:     "5.4.0",
		TLSSecret:   DefaultTLSSecret,
		Selector:    "app=minio",
		ValuesFile:  "minio.yaml",
		PostInstall: ensureArtifactBucket,
		Smoke:       minioSmoke,
	},
	{
		Name:       "postgresql",
		Namespace:  "postgresql",
		Release:    "postgresql",
		RepoName:   "bitnami",
		RepoURL:    "https://charts.bitnami.com/bitnami",
		Chart:      "postgresql",
		Version:    "16.4.5",
		Selector:   "app.kubernetes.io/name=postgresql",
		ValuesFile: "postgresql.yaml",
		Smoke:      postgresSmoke,
	},
	{
		Name:       "redis",
		Namespace:  "redis",
		Release:    "redis",
		RepoName:   "bitnami",
		RepoURL:    "https://charts.bitnami.com/bitnami",
		Chart:      "redis",
		Version:    "20.6.2",
		TLSSecret:  "redis-tls",
		Selector:   "app.kubernetes.io/name=redis",
		ValuesFile: "redis.yaml",
		Smoke:      redisSmoke,
	},
	{
		Name:       "kafka",
		Namespace:  "kafka",
		Release:    "kafka",
		RepoName:   "bitnami",
		RepoURL:    "https://charts.bitnami.com/bitnami",
		Chart:      "kafka",
		Version:    "31.1.0",
		TLSSecret:  "kafka-tls",
		Selector:   "app.kubernetes.io/name=kafka",
		ValuesFile: "kafka.yaml",
		Timeout:    10 * time.Minute,
	},
	{
		Name:        "mlflow",
		Namespace:   "mlflow",
		Release:     "mlflow",
		RepoName:    "community-charts",
		RepoURL:     "https://community-charts.github.io/helm-charts",
		Chart:       "mlflow",
		Version:     "0.17.2",
		TLSSecret:   DefaultTLSSecret,
		Selector:    "app.kubernetes.io/name=mlflow",
		ValuesFile:  "mlflow.yaml",
		PostInstall: ensureMLflowDependencies,
	},
	{
		Name:       "jupyterhub",
		Namespace:  "jupyterhub",
		Release:    "jupyterhub",
		RepoName:   "jupyterhub",
		RepoURL:    "https://hub.jupyter.org/helm-chart/",
		Chart:      "jupyterhub",
		Version:    "4.0.0",
		TLSSecret:  DefaultTLSSecret,
		Selector:   "component=hub",
		ValuesFile: "jupyterhub.yaml",
		Timeout:    10 * time.Minute,
	},
}

// Lookup returns the definition for a service name. ingress-nginx is
// addressable for status and logs even though `up` owns its lifecycle.
func Lookup(name string) (Definition, error) {
	if name == IngressNginx.Name {
		return IngressNginx, nil
	}
	for _, svc := range catalog {
		if svc.Name == name {
			return svc, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown service %q (known: %v)", name, Names())
}

// Names returns the catalog service names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, svc := range catalog {
		names = append(names, svc.Name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns the managed service definitions in declaration order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// argocdVars derives the bcrypt hash the argo-cd chart expects for the
// admin password.
func argocdVars(cfg *config.Config) (map[string]string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.ArgoCDAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash argocd admin password: %w", err)
	}
	return map[string]string{
		"ARGOCD_ADMIN_PASSWORD_BCRYPT": string(hash),
	}, nil
}
