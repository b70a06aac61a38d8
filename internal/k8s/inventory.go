package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Inventory is a snapshot of the resources in a service namespace, used by
// the status report.
type Inventory struct {
	Pods      []corev1.Pod
	Services  []corev1.Service
	Ingresses []networkingv1.Ingress
	Secrets   []corev1.Secret
	PVCs      []corev1.PersistentVolumeClaim
}

// CollectInventory lists the pods, services, ingresses, secrets, and PVCs
// in a namespace.
func (c *Client) CollectInventory(ctx context.Context, namespace string) (*Inventory, error) {
	inv := &Inventory{}

	pods, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods in %s: %w", namespace, err)
	}
	inv.Pods = pods.Items

	services, err := c.clientset.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list services in %s: %w", namespace, err)
	}
	inv.Services = services.Items

	ingresses, err := c.clientset.NetworkingV1().Ingresses(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list ingresses in %s: %w", namespace, err)
	}
	inv.Ingresses = ingresses.Items

	secrets, err := c.clientset.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list secrets in %s: %w", namespace, err)
	}
	inv.Secrets = secrets.Items

	pvcs, err := c.clientset.CoreV1().PersistentVolumeClaims(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list PVCs in %s: %w", namespace, err)
	}
	inv.PVCs = pvcs.Items

	return inv, nil
}

// PodLogs returns the last tailLines lines of logs from a pod.
func (c *Client) PodLogs(ctx context.Context, namespace, name string, tailLines int64) (string, error) {
	req := c.clientset.CoreV1().Pods(namespace).GetLogs(name, &corev1.PodLogOptions{
		TailLines: &tailLines,
	})
	logs, err := req.DoRaw(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get logs for pod %s/%s: %w", namespace, name, err)
	}
	return string(logs), nil
}
