package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestReplaceTLSSecretCreates(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	client := NewForClientset(clientset)

	err := client.ReplaceTLSSecret(context.Background(), "minio", "local-dev-tls",
		[]byte("cert-pem"), []byte("key-pem"))
	require.NoError(t, err)

	secret, err := clientset.CoreV1().Secrets("minio").Get(context.Background(), "local-dev-tls", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, corev1.SecretTypeTLS, secret.Type)
	assert.Equal(t, []byte("cert-pem"), secret.Data[corev1.TLSCertKey])
	assert.Equal(t, []byte("key-pem"), secret.Data[corev1.TLSPrivateKeyKey])
}

func TestReplaceTLSSecretReplacesStale(t *testing.T) {
	clientset := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "local-dev-tls", Namespace: "minio"},
		Type:       corev1.SecretTypeTLS,
		Data: map[string][]byte{
			corev1.TLSCertKey:       []byte("old-cert"),
			corev1.TLSPrivateKeyKey: []byte("old-key"),
		},
	})
	client := NewForClientset(clientset)

	err := client.ReplaceTLSSecret(context.Background(), "minio", "local-dev-tls",
		[]byte("new-cert"), []byte("new-key"))
	require.NoError(t, err)

	secret, err := clientset.CoreV1().Secrets("minio").Get(context.Background(), "local-dev-tls", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte("new-cert"), secret.Data[corev1.TLSCertKey])
}

func TestSecretExists(t *testing.T) {
	clientset := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "local-dev-tls", Namespace: "minio"},
	})
	client := NewForClientset(clientset)

	exists, err := client.SecretExists(context.Background(), "minio", "local-dev-tls")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.SecretExists(context.Background(), "minio", "absent")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetSecretData(t *testing.T) {
	clientset := fake.NewSimpleClientset(&corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "argocd-initial-admin-secret", Namespace: "argocd"},
		Data:       map[string][]byte{"password": []byte("s3cret")},
	})
	client := NewForClientset(clientset)

	data, err := client.GetSecretData(context.Background(), "argocd", "argocd-initial-admin-secret", "password")
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), data)

	_, err = client.GetSecretData(context.Background(), "argocd", "argocd-initial-admin-secret", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key missing not found")
}
