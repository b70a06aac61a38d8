package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// redisSmoke execs redis-cli inside the first redis pod and expects PONG.
func redisSmoke(ctx context.Context, deps *Deps) error {
	pods, err := deps.Kube.GetPods(ctx, "redis", "app.kubernetes.io/name=redis")
	if err != nil {
		return err
	}
	if len(pods) == 0 {
		return fmt.Errorf("no redis pods found")
	}

	command := []string{"redis-cli", "--no-auth-warning", "-a", deps.Cfg.RedisPassword, "ping"}
	out, err := deps.Kube.ExecInPod(ctx, "redis", pods[0].Name, "redis", command)
	if err != nil {
		return err
	}

	if !strings.Contains(out, "PONG") {
		return fmt.Errorf("unexpected redis-cli output: %q", strings.TrimSpace(out))
	}
	return nil
}

// minioSmoke lists buckets through a port-forward and checks the artifact
// bucket is present.
func minioSmoke(ctx context.Context, deps *Deps) error {
	forward, err := deps.Kube.ForwardServicePort(ctx, "minio", minioSelector, minioPort)
	if err != nil {
		return fmt.Errorf("failed to reach minio: %w", err)
	}
	defer forward.Close()

	store, err := newObjectStore(ctx, deps.Cfg, forward.LocalPort)
	if err != nil {
		return err
	}

	result, err := store.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}

	for _, bucket := range result.Buckets {
		if bucket.Name != nil && *bucket.Name == deps.Cfg.MLflowBucket {
			return nil
		}
	}
	return fmt.Errorf("bucket %s not found", deps.Cfg.MLflowBucket)
}

// postgresSmoke connects through a port-forward and runs SELECT 1.
func postgresSmoke(ctx context.Context, deps *Deps) error {
	forward, err := deps.Kube.ForwardServicePort(ctx, "postgresql", postgresSelector, postgresPort)
	if err != nil {
		return fmt.Errorf("failed to reach postgresql: %w", err)
	}
	defer forward.Close()

	conn, err := connectPostgres(ctx, postgresDSN(deps.Cfg, forward.LocalPort))
	if err != nil {
		return fmt.Errorf("failed to connect to postgresql: %w", err)
	}
	defer conn.Close(ctx)

	var one int
	if err := conn.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if one != 1 {
		return fmt.Errorf("unexpected query result %d", one)
	}
	return nil
}
