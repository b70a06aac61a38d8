// Package helm wraps the Helm SDK action package for release lifecycle
// operations. Release existence is checked through the SDK's release
// history, never by parsing CLI output.
package helm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/release"
	"helm.sh/helm/v3/pkg/storage/driver"
	"k8s.io/client-go/rest"
)

// DefaultTimeout bounds install and upgrade waits.
const DefaultTimeout = 5 * time.Minute

// Client handles Helm release operations against a single cluster.
type Client struct {
	settings   *cli.EnvSettings
	restConfig *rest.Config
}

// NewClient creates a Helm client for the cluster behind restConfig.
func NewClient(restConfig *rest.Config) *Client {
	return &Client{
		settings:   cli.New(),
		restConfig: restConfig,
	}
}

// ChartRef identifies a chart in a repository.
type ChartRef struct {
	RepoURL string
	Name    string
	Version string
}

// ReleaseSpec describes a release to install or upgrade.
type ReleaseSpec struct {
	Namespace string
	Release   string
	Chart     ChartRef
	Values    map[string]any
	Timeout   time.Duration
}

func (s *ReleaseSpec) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (c *Client) actionConfig(namespace string) (*action.Configuration, error) {
	getter := &restClientGetter{
		config:    c.restConfig,
		namespace: namespace,
	}

	actionConfig := new(action.Configuration)
	if err := actionConfig.Init(getter, namespace, os.Getenv("HELM_DRIVER"), log.Printf); err != nil {
		return nil, fmt.Errorf("failed to init helm action config: %w", err)
	}
	return actionConfig, nil
}

// ReleaseExists reports whether a release with the given name exists in the
// namespace.
func (c *Client) ReleaseExists(namespace, releaseName string) (bool, error) {
	actionConfig, err := c.actionConfig(namespace)
	if err != nil {
		return false, err
	}

	hist := action.NewHistory(actionConfig)
	hist.Max = 1
	_, err = hist.Run(releaseName)
	if err != nil {
		if errors.Is(err, driver.ErrReleaseNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to query history for release %s: %w", releaseName, err)
	}
	return true, nil
}

// Install installs the chart as a new release and waits for the workloads
// to become ready, up to the spec timeout.
func (c *Client) Install(ctx context.Context, spec ReleaseSpec) error {
	actionConfig, err := c.actionConfig(spec.Namespace)
	if err != nil {
		return err
	}

	chart, err := c.loadChart(spec.Chart)
	if err != nil {
		return err
	}

	install := action.NewInstall(actionConfig)
	install.Namespace = spec.Namespace
	install.ReleaseName = spec.Release
	install.Wait = true
	install.Timeout = spec.timeout()

	if _, err := install.RunWithContext(ctx, chart, spec.Values); err != nil {
		return fmt.Errorf("helm install %s failed: %w", spec.Release, err)
	}
	return nil
}

// Upgrade upgrades an existing release and waits for readiness.
func (c *Client) Upgrade(ctx context.Context, spec ReleaseSpec) error {
	actionConfig, err := c.actionConfig(spec.Namespace)
	if err != nil {
		return err
	}

	chart, err := c.loadChart(spec.Chart)
	if err != nil {
		return err
	}

	upgrade := action.NewUpgrade(actionConfig)
	upgrade.Namespace = spec.Namespace
	upgrade.Wait = true
	upgrade.Timeout = spec.timeout()

	if _, err := upgrade.RunWithContext(ctx, spec.Release, chart, spec.Values); err != nil {
		return fmt.Errorf("helm upgrade %s failed: %w", spec.Release, err)
	}
	return nil
}

// Uninstall removes a release. The caller is responsible for checking
// existence first; uninstalling a missing release is an error here.
func (c *Client) Uninstall(namespace, releaseName string) error {
	actionConfig, err := c.actionConfig(namespace)
	if err != nil {
		return err
	}

	uninstall := action.NewUninstall(actionConfig)
	if _, err := uninstall.Run(releaseName); err != nil {
		return fmt.Errorf("helm uninstall %s failed: %w", releaseName, err)
	}
	return nil
}

// ReleaseInfo returns the deployed release, or nil if it does not exist.
func (c *Client) ReleaseInfo(namespace, releaseName string) (*release.Release, error) {
	actionConfig, err := c.actionConfig(namespace)
	if err != nil {
		return nil, err
	}

	status := action.NewStatus(actionConfig)
	rel, err := status.Run(releaseName)
	if err != nil {
		if errors.Is(err, driver.ErrReleaseNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get status for release %s: %w", releaseName, err)
	}
	return rel, nil
}

func (c *Client) loadChart(ref ChartRef) (*chart.Chart, error) {
	cp := &action.ChartPathOptions{
		RepoURL: ref.RepoURL,
		Version: ref.Version,
	}

	chartPath, err := cp.LocateChart(ref.Name, c.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to locate chart %s: %w", ref.Name, err)
	}

	chrt, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart %s: %w", ref.Name, err)
	}
	return chrt, nil
}
