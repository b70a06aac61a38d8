package k8s

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
)

// pollInterval is the delay between readiness probes.
const pollInterval = 5 * time.Second

// WaitForPodsReady blocks until at least one pod matches the label selector
// and all matching pods are Running and Ready, or the timeout elapses.
func (c *Client) WaitForPodsReady(ctx context.Context, namespace, labelSelector string, timeout time.Duration) error {
	return wait.PollUntilContextTimeout(ctx, pollInterval, timeout, true, func(ctx context.Context) (bool, error) {
		pods, err := c.GetPods(ctx, namespace, labelSelector)
		if err != nil {
			return false, nil
		}

		if len(pods) == 0 {
			return false, nil
		}

		for i := range pods {
			if !isPodReady(&pods[i]) {
				return false, nil
			}
		}
		return true, nil
	})
}

// WaitForNodesReady blocks until every node in the cluster reports Ready.
func (c *Client) WaitForNodesReady(ctx context.Context, timeout time.Duration) error {
	return wait.PollUntilContextTimeout(ctx, pollInterval, timeout, true, func(ctx context.Context) (bool, error) {
		nodes, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
		if err != nil {
			return false, nil
		}
		if len(nodes.Items) == 0 {
			return false, nil
		}
		for i := range nodes.Items {
			if !isNodeReady(&nodes.Items[i]) {
				return false, nil
			}
		}
		return true, nil
	})
}

// GetPods returns pods matching a label selector in a namespace.
func (c *Client) GetPods(ctx context.Context, namespace, labelSelector string) ([]corev1.Pod, error) {
	podList, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, err
	}
	return podList.Items, nil
}

// PodsReady reports whether at least one pod matches the selector and every
// matching pod is Running and Ready. This is the single-shot form of
// WaitForPodsReady used by the status report.
func (c *Client) PodsReady(ctx context.Context, namespace, labelSelector string) (bool, error) {
	pods, err := c.GetPods(ctx, namespace, labelSelector)
	if err != nil {
		return false, err
	}
	if len(pods) == 0 {
		return false, nil
	}
	for i := range pods {
		if !isPodReady(&pods[i]) {
			return false, nil
		}
	}
	return true, nil
}

func isPodReady(pod *corev1.Pod) bool {
	if pod.Status.Phase != corev1.PodRunning {
		return false
	}
	for _, condition := range pod.Status.Conditions {
		if condition.Type == corev1.PodReady && condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}

func isNodeReady(node *corev1.Node) bool {
	for _, condition := range node.Status.Conditions {
		if condition.Type == corev1.NodeReady && condition.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}
