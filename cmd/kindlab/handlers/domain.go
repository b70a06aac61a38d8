package handlers

import (
	"context"
)

// DomainConfigure applies the host DNS and TLS configuration for the
// configured local domain. Requires root; the configurator enforces it.
func DomainConfigure(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	return newConfigurator().Configure(ctx, cfg.LocalDomain)
}

// DomainClean removes the host DNS configuration for the configured local
// domain and deletes the state file.
func DomainClean(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	return newConfigurator().Clean(ctx, cfg.LocalDomain)
}
