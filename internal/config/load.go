package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Defaults applied when the .env file omits a key.
const (
	DefaultClusterName = "kind-lab"
	DefaultLocalDomain = "kind.local"
)

// Load reads the .env file at path and returns a validated Config.
//
// A missing file is not an error: every key falls back to its default and
// missing credentials are generated. A present but unreadable or malformed
// file is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		// No .env file; run with defaults and generated credentials.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := generateMissingCredentials(&cfg); err != nil {
		return nil, fmt.Errorf("failed to generate credentials: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cluster_name", DefaultClusterName)
	v.SetDefault("local_domain", DefaultLocalDomain)
	v.SetDefault("minio_root_user", "minioadmin")
	v.SetDefault("postgres_user", "postgres")
	v.SetDefault("postgres_db", "postgres")
	v.SetDefault("kafka_replicas", 1)
	v.SetDefault("jupyter_admin_user", "admin")
	v.SetDefault("mlflow_db_name", "mlflow")
	v.SetDefault("mlflow_bucket", "mlflow-artifacts")
	v.SetDefault("mlflow_s3_endpoint", "http://minio.minio.svc.cluster.local:9000")
}
