// Package config loads and validates the kindlab environment configuration.
//
// Configuration lives in a flat .env file (KEY=value, # comments). It is
// decoded once into an immutable Config struct that is passed explicitly to
// every operation; no package reads environment state on its own.
package config

import (
	"fmt"
	"strconv"
)

// Config holds the kindlab environment configuration.
type Config struct {
	ClusterName string `mapstructure:"cluster_name"`
	LocalDomain string `mapstructure:"local_domain"`

	// MinIO
	MinioRootUser     string `mapstructure:"minio_root_user"`
	MinioRootPassword string `mapstructure:"minio_root_password"`

	// PostgreSQL
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"`
	PostgresDB       string `mapstructure:"postgres_db"`

	// Redis
	RedisPassword string `mapstructure:"redis_password"`

	// ArgoCD
	ArgoCDAdminPassword string `mapstructure:"argocd_admin_password"`

	// Kafka
	KafkaReplicas int `mapstructure:"kafka_replicas"`

	// JupyterHub
	JupyterAdminUser     string `mapstructure:"jupyter_admin_user"`
	JupyterAdminPassword string `mapstructure:"jupyter_admin_password"`

	// MLflow
	MLflowDBName     string `mapstructure:"mlflow_db_name"`
	MLflowBucket     string `mapstructure:"mlflow_bucket"`
	MLflowS3Endpoint string `mapstructure:"mlflow_s3_endpoint"`
}

// KubeContext returns the kubeconfig context name Kind registers for the cluster.
func (c *Config) KubeContext() string {
	return "kind-" + c.ClusterName
}

// Host returns the ingress hostname for a service under the local domain.
func (c *Config) Host(service string) string {
	return service + "." + c.LocalDomain
}

// Vars returns the substitution variables available to values templates.
// Keys match the ${VAR} placeholder names used in the embedded values files.
func (c *Config) Vars() map[string]string {
	return map[string]string{
		"CLUSTER_NAME":           c.ClusterName,
		"LOCAL_DOMAIN":           c.LocalDomain,
		"MINIO_ROOT_USER":        c.MinioRootUser,
		"MINIO_ROOT_PASSWORD":    c.MinioRootPassword,
		"POSTGRES_USER":          c.PostgresUser,
		"POSTGRES_PASSWORD":      c.PostgresPassword,
		"POSTGRES_DB":            c.PostgresDB,
		"REDIS_PASSWORD":         c.RedisPassword,
		"ARGOCD_ADMIN_PASSWORD":  c.ArgoCDAdminPassword,
		"KAFKA_REPLICAS":         strconv.Itoa(c.KafkaReplicas),
		"JUPYTER_ADMIN_USER":     c.JupyterAdminUser,
		"JUPYTER_ADMIN_PASSWORD": c.JupyterAdminPassword,
		"MLFLOW_DB_NAME":         c.MLflowDBName,
		"MLFLOW_BUCKET":          c.MLflowBucket,
		"MLFLOW_S3_ENDPOINT":     c.MLflowS3Endpoint,
	}
}

// Validate checks the configuration for values that would break downstream
// operations. Credential fields are not validated here; missing credentials
// are generated at load time.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name must not be empty")
	}
	if !validDNSLabel(c.ClusterName) {
		return fmt.Errorf("cluster_name %q is not a valid DNS label", c.ClusterName)
	}
	if c.LocalDomain == "" {
		return fmt.Errorf("local_domain must not be empty")
	}
	if !validDomain(c.LocalDomain) {
		return fmt.Errorf("local_domain %q is not a valid domain name", c.LocalDomain)
	}
	if c.KafkaReplicas < 1 {
		return fmt.Errorf("kafka_replicas must be at least 1, got %d", c.KafkaReplicas)
	}
	return nil
}

// validDNSLabel reports whether s is a valid lowercase RFC 1123 DNS label.
func validDNSLabel(s string) bool {
	if len(s) == 0 || len(s) > 63 {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '-':
			if i == 0 || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// validDomain reports whether s is a dot-separated sequence of DNS labels.
func validDomain(s string) bool {
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '.' {
			if !validDNSLabel(s[start:i]) {
				return false
			}
			start = i + 1
		}
	}
	return true
}
