package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestCollectInventory(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		readyPod("minio", "minio-0", map[string]string{"app": "minio"}),
		&corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: "minio", Namespace: "minio"}},
		&networkingv1.Ingress{ObjectMeta: metav1.ObjectMeta{Name: "minio", Namespace: "minio"}},
		&corev1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "local-dev-tls", Namespace: "minio"}},
		&corev1.PersistentVolumeClaim{ObjectMeta: metav1.ObjectMeta{Name: "minio-data", Namespace: "minio"}},
		// Resources in other namespaces must not leak into the snapshot.
		readyPod("redis", "redis-0", map[string]string{"app": "redis"}),
	)
	client := NewForClientset(clientset)

	inv, err := client.CollectInventory(context.Background(), "minio")
	require.NoError(t, err)

	require.Len(t, inv.Pods, 1)
	assert.Equal(t, "minio-0", inv.Pods[0].Name)
	assert.Len(t, inv.Services, 1)
	assert.Len(t, inv.Ingresses, 1)
	assert.Len(t, inv.Secrets, 1)
	assert.Len(t, inv.PVCs, 1)
}

func TestCollectInventoryEmptyNamespace(t *testing.T) {
	client := NewForClientset(fake.NewSimpleClientset())

	inv, err := client.CollectInventory(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, inv.Pods)
	assert.Empty(t, inv.Services)
}
