package k8s

import (
	"bytes"
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/remotecommand"
)

// ExecInPod runs a command inside a pod container and returns its stdout.
// Stderr is folded into the error on a non-zero exit.
func (c *Client) ExecInPod(ctx context.Context, namespace, pod, container string, command []string) (string, error) {
	if c.restConfig == nil {
		return "", fmt.Errorf("pod exec requires a REST config")
	}

	clientset, ok := c.clientset.(*kubernetes.Clientset)
	if !ok {
		return "", fmt.Errorf("pod exec requires a real clientset")
	}

	req := clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(namespace).
		Name(pod).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: container,
			Command:   command,
			Stdout:    true,
			Stderr:    true,
		}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(c.restConfig, "POST", req.URL())
	if err != nil {
		return "", fmt.Errorf("failed to create executor: %w", err)
	}

	var stdout, stderr bytes.Buffer
	err = executor.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return stdout.String(), fmt.Errorf("exec in pod %s/%s failed: %w (stderr: %s)", namespace, pod, err, stderr.String())
	}

	return stdout.String(), nil
}
