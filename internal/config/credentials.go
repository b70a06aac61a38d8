package config

import (
	"fmt"
	"log"

	"github.com/sethvargo/go-password/password"
)

// credentialLength is long enough for local dev without being unwieldy in
// a .env file a developer may copy around.
const credentialLength = 24

// generateMissingCredentials fills empty credential fields with generated
// passwords and logs which ones were generated so the developer can persist
// them into the .env file. Symbols are excluded to keep the values safe to
// embed in YAML and shell without quoting.
func generateMissingCredentials(cfg *Config) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"MINIO_ROOT_PASSWORD", &cfg.MinioRootPassword},
		{"POSTGRES_PASSWORD", &cfg.PostgresPassword},
		{"REDIS_PASSWORD", &cfg.RedisPassword},
		{"ARGOCD_ADMIN_PASSWORD", &cfg.ArgoCDAdminPassword},
		{"JUPYTER_ADMIN_PASSWORD", &cfg.JupyterAdminPassword},
	}

	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		generated, err := password.Generate(credentialLength, 6, 0, false, false)
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", f.name, err)
		}
		*f.value = generated
		log.Printf("Generated %s (add it to .env to keep it stable): %s", f.name, generated)
	}

	return nil
}
