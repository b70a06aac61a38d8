package k8s

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/portforward"
	"k8s.io/client-go/transport/spdy"
)

// forwardReadyTimeout bounds how long we wait for the tunnel to come up.
const forwardReadyTimeout = 30 * time.Second

// PortForward is an active tunnel from a local ephemeral port to a pod port.
type PortForward struct {
	// LocalPort is the ephemeral port on 127.0.0.1 the tunnel listens on.
	LocalPort uint16

	stopCh chan struct{}
}

// Close tears the tunnel down. Safe to call more than once, and on a
// zero-value PortForward.
func (p *PortForward) Close() {
	if p.stopCh == nil {
		return
	}
	select {
	case <-p.stopCh:
	default:
		close(p.stopCh)
	}
}

// ForwardPodPort opens a port-forward from a local ephemeral port to the
// given pod port. The caller must Close the returned PortForward.
func (c *Client) ForwardPodPort(ctx context.Context, namespace, pod string, remotePort int) (*PortForward, error) {
	if c.restConfig == nil {
		return nil, fmt.Errorf("port-forward requires a REST config")
	}

	clientset, ok := c.clientset.(*kubernetes.Clientset)
	if !ok {
		return nil, fmt.Errorf("port-forward requires a real clientset")
	}

	roundTripper, upgrader, err := spdy.RoundTripperFor(c.restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create spdy round tripper: %w", err)
	}

	req := clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(namespace).
		Name(pod).
		SubResource("portforward")

	dialer := spdy.NewDialer(upgrader, &http.Client{Transport: roundTripper}, http.MethodPost, req.URL())

	stopCh := make(chan struct{})
	readyCh := make(chan struct{})

	fw, err := portforward.New(dialer, []string{fmt.Sprintf("0:%d", remotePort)}, stopCh, readyCh, io.Discard, io.Discard)
	if err != nil {
		return nil, fmt.Errorf("failed to create port forwarder: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- fw.ForwardPorts()
	}()

	select {
	case err := <-errCh:
		return nil, fmt.Errorf("port-forward to pod %s/%s failed: %w", namespace, pod, err)
	case <-ctx.Done():
		close(stopCh)
		return nil, ctx.Err()
	case <-time.After(forwardReadyTimeout):
		close(stopCh)
		return nil, fmt.Errorf("timed out waiting for port-forward to pod %s/%s", namespace, pod)
	case <-readyCh:
	}

	ports, err := fw.GetPorts()
	if err != nil {
		close(stopCh)
		return nil, fmt.Errorf("failed to get forwarded ports: %w", err)
	}
	if len(ports) == 0 {
		close(stopCh)
		return nil, fmt.Errorf("port forwarder reported no ports")
	}

	return &PortForward{LocalPort: ports[0].Local, stopCh: stopCh}, nil
}

// ForwardServicePort opens a port-forward to the first ready pod matching
// the label selector, for services that do not expose a stable pod name.
func (c *Client) ForwardServicePort(ctx context.Context, namespace, labelSelector string, remotePort int) (*PortForward, error) {
	pods, err := c.GetPods(ctx, namespace, labelSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to list pods for selector %q: %w", labelSelector, err)
	}

	for i := range pods {
		if isPodReady(&pods[i]) {
			return c.ForwardPodPort(ctx, namespace, pods[i].Name, remotePort)
		}
	}
	return nil, fmt.Errorf("no ready pod matches selector %q in namespace %s", labelSelector, namespace)
}
