// Package k8s wraps the Kubernetes API operations kindlab needs: namespace
// and secret management, readiness polling, resource inventory for status
// reports, pod exec, and port-forwarding.
package k8s

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps a Kubernetes clientset together with the REST config needed
// for exec and port-forward subresource requests.
type Client struct {
	clientset  kubernetes.Interface
	restConfig *rest.Config
}

// NewClient creates a client for the given kubeconfig context using the
// default kubeconfig loading rules (KUBECONFIG, then ~/.kube/config).
func NewClient(kubeContext string) (*Client, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}

	restConfig, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig for context %s: %w", kubeContext, err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{
		clientset:  clientset,
		restConfig: restConfig,
	}, nil
}

// NewForClientset wraps an existing clientset. The returned client cannot
// exec into pods or port-forward; it is intended for tests with a fake
// clientset.
func NewForClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}

// RESTConfig returns the REST config the client was built from, or nil for
// clients created with NewForClientset.
func (c *Client) RESTConfig() *rest.Config {
	return c.restConfig
}

// Clientset exposes the underlying clientset for callers that manage typed
// resources directly.
func (c *Client) Clientset() kubernetes.Interface {
	return c.clientset
}
