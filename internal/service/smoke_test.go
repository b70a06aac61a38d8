package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/kindlab/internal/config"
)

func TestRedisSmoke(t *testing.T) {
	kube := newFakeKube()
	kube.pods = []corev1.Pod{{ObjectMeta: metav1.ObjectMeta{Name: "redis-master-0"}}}
	kube.execOut = "PONG"

	deps := &Deps{Kube: kube, Cfg: &config.Config{RedisPassword: "s3cret"}}

	err := redisSmoke(context.Background(), deps)
	require.NoError(t, err)

	require.Len(t, kube.execCalls, 1)
	assert.Equal(t, []string{"redis-cli", "--no-auth-warning", "-a", "s3cret", "ping"}, kube.execCalls[0])
}

func TestRedisSmokeUnexpectedOutput(t *testing.T) {
	kube := newFakeKube()
	kube.pods = []corev1.Pod{{ObjectMeta: metav1.ObjectMeta{Name: "redis-master-0"}}}
	kube.execOut = "NOAUTH Authentication required."

	deps := &Deps{Kube: kube, Cfg: &config.Config{RedisPassword: "wrong"}}

	err := redisSmoke(context.Background(), deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected redis-cli output")
}

func TestRedisSmokeNoPods(t *testing.T) {
	deps := &Deps{Kube: newFakeKube(), Cfg: &config.Config{}}

	err := redisSmoke(context.Background(), deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no redis pods")
}

func TestMinioSmokeForwardFailure(t *testing.T) {
	// The fake cannot port-forward by default, which is exactly the
	// failure mode when the service is unreachable.
	deps := &Deps{Kube: newFakeKube(), Cfg: &config.Config{MLflowBucket: "mlflow-artifacts"}}

	err := minioSmoke(context.Background(), deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach minio")
}

func TestMinioSmokeBucketPresent(t *testing.T) {
	deps, _ := hookDeps()
	stubHookClients(t, &fakeObjectStore{buckets: []string{"mlflow-artifacts"}}, &fakePgConn{})

	require.NoError(t, minioSmoke(context.Background(), deps))
}

func TestMinioSmokeBucketMissing(t *testing.T) {
	deps, _ := hookDeps()
	stubHookClients(t, &fakeObjectStore{buckets: []string{"other"}}, &fakePgConn{})

	err := minioSmoke(context.Background(), deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket mlflow-artifacts not found")
}

func TestPostgresSmoke(t *testing.T) {
	deps, _ := hookDeps()
	conn := &fakePgConn{}
	stubHookClients(t, &fakeObjectStore{}, conn)

	require.NoError(t, postgresSmoke(context.Background(), deps))
	assert.Equal(t, []string{"SELECT 1"}, conn.queries)
	assert.True(t, conn.closed)
}
