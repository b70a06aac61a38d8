package statuspage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/imamik/kindlab/internal/k8s"
)

func TestDeploy(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	client := k8s.NewForClientset(clientset)

	err := Deploy(context.Background(), client, "kind.local", []byte("cert"), []byte("key"))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = clientset.CoreV1().Namespaces().Get(ctx, Namespace, metav1.GetOptions{})
	require.NoError(t, err)

	secret, err := clientset.CoreV1().Secrets(Namespace).Get(ctx, TLSSecret, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, corev1.SecretTypeTLS, secret.Type)

	deployment, err := clientset.AppsV1().Deployments(Namespace).Get(ctx, "status", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "nginx:1.27-alpine", deployment.Spec.Template.Spec.Containers[0].Image)

	service, err := clientset.CoreV1().Services(Namespace).Get(ctx, "status", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"app": "status"}, service.Spec.Selector)

	ingress, err := clientset.NetworkingV1().Ingresses(Namespace).Get(ctx, "status", metav1.GetOptions{})
	require.NoError(t, err)
	require.Len(t, ingress.Spec.Rules, 1)
	assert.Equal(t, "status.kind.local", ingress.Spec.Rules[0].Host)
	require.Len(t, ingress.Spec.TLS, 1)
	assert.Equal(t, TLSSecret, ingress.Spec.TLS[0].SecretName)
}

func TestDeployIsIdempotent(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	client := k8s.NewForClientset(clientset)

	require.NoError(t, Deploy(context.Background(), client, "kind.local", []byte("cert"), []byte("key")))
	// A second deploy updates in place instead of failing on AlreadyExists.
	require.NoError(t, Deploy(context.Background(), client, "dev.local", []byte("cert2"), []byte("key2")))

	ingress, err := clientset.NetworkingV1().Ingresses(Namespace).Get(context.Background(), "status", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "status.dev.local", ingress.Spec.Rules[0].Host)

	secret, err := clientset.CoreV1().Secrets(Namespace).Get(context.Background(), TLSSecret, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte("cert2"), secret.Data[corev1.TLSCertKey])
}
