package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/imamik/kindlab/internal/config"
)

// In-cluster ports the hooks tunnel to.
const (
	minioPort    = 9000
	postgresPort = 5432
)

// Selectors for the pods the hooks tunnel to. They must match the pods the
// corresponding charts produce.
const (
	minioSelector    = "app=minio"
	postgresSelector = "app.kubernetes.io/name=postgresql"
)

// objectStore is the subset of the S3 API the hooks and smoke tests use.
// Satisfied by *s3.Client.
type objectStore interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// pgConn is the subset of *pgx.Conn the hooks and smoke tests use.
type pgConn interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// Client constructors, swapped in tests.
var (
	newObjectStore = func(ctx context.Context, cfg *config.Config, localPort uint16) (objectStore, error) {
		return minioS3Client(ctx, cfg, localPort)
	}
	connectPostgres = func(ctx context.Context, dsn string) (pgConn, error) {
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
)

// ensureArtifactBucket creates the MLflow artifact bucket in MinIO through
// a port-forward. A bucket that already exists and is owned by us is fine.
func ensureArtifactBucket(ctx context.Context, deps *Deps) error {
	forward, err := deps.Kube.ForwardServicePort(ctx, "minio", minioSelector, minioPort)
	if err != nil {
		return fmt.Errorf("failed to reach minio: %w", err)
	}
	defer forward.Close()

	store, err := newObjectStore(ctx, deps.Cfg, forward.LocalPort)
	if err != nil {
		return err
	}

	bucket := deps.Cfg.MLflowBucket
	_, err = store.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		var taken *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &taken) {
			log.Printf("Bucket %s already exists", bucket)
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}

	log.Printf("Created bucket %s", bucket)
	return nil
}

// ensureMLflowDatabase creates the MLflow database in PostgreSQL if it does
// not exist. CREATE DATABASE cannot run in a transaction and takes no bind
// parameters, so the name is sanitized as an identifier.
func ensureMLflowDatabase(ctx context.Context, deps *Deps) error {
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

	dbName := deps.Cfg.MLflowDBName

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for database %s: %w", dbName, err)
	}
	if exists {
		log.Printf("Database %s already exists", dbName)
		return nil
	}

	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database %s: %w", dbName, err)
	}

	log.Printf("Created database %s", dbName)
	return nil
}

// ensureMLflowDependencies provisions what MLflow needs before its first
// start: the backend-store database and the artifact bucket.
func ensureMLflowDependencies(ctx context.Context, deps *Deps) error {
	if err := ensureMLflowDatabase(ctx, deps); err != nil {
		return err
	}
	return ensureArtifactBucket(ctx, deps)
}

func postgresDSN(cfg *config.Config, localPort uint16) string {
	return fmt.Sprintf("postgres://%s:%s@127.0.0.1:%d/%s",
		cfg.PostgresUser, cfg.PostgresPassword, localPort, cfg.PostgresDB)
}

// minioS3Client builds an S3 client against the forwarded MinIO port.
// Path-style addressing is required; MinIO does not serve virtual-host
// bucket URLs locally.
func minioS3Client(ctx context.Context, cfg *config.Config, localPort uint16) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.MinioRootUser, cfg.MinioRootPassword, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 config: %w", err)
	}

	endpoint := fmt.Sprintf("http://127.0.0.1:%d", localPort)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}
