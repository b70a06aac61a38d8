package handlers

import (
	"context"
	"os"

	"github.com/imamik/kindlab/internal/ui"
)

// euid is overridable in tests.
var euid = os.Geteuid

// Clean deletes the cluster and removes the host DNS/TLS configuration and
// the state file. The host cleanup needs root; without it the cluster is
// still deleted and the host part is left with a pointer to the command
// that can do it.
func Clean(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	if err := Down(ctx, envFile); err != nil {
		return err
	}

	if euid() != 0 {
		ui.Warnf("not running as root; host DNS/TLS config left in place (run 'sudo kindlab domain clean')")
		return nil
	}

	return newConfigurator().Clean(ctx, cfg.LocalDomain)
}
