package handlers

import (
	"context"

	"github.com/imamik/kindlab/internal/ui"
)

// Down deletes the Kind cluster. An absent cluster is a warning no-op.
func Down(_ context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	manager := newClusterManager()
	exists, err := manager.Exists(cfg.ClusterName)
	if err != nil {
		return err
	}
	if !exists {
		ui.Warnf("cluster %s does not exist; nothing to delete", cfg.ClusterName)
		return nil
	}

	ui.Infof("Deleting Kind cluster %s", cfg.ClusterName)
	if err := manager.Delete(cfg.ClusterName); err != nil {
		return err
	}

	ui.Okf("cluster %s deleted", cfg.ClusterName)
	return nil
}
