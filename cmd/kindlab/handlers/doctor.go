package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/kindlab/internal/service"
	"github.com/imamik/kindlab/internal/ui"
)

// Doctor diagnoses the environment: host tools, cluster existence, and
// per-service release state. Diagnostics never mutate anything; a missing
// cluster stops the cluster-side checks but is not an error.
func Doctor(ctx context.Context, envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	fmt.Println(ui.TitleStyle.Render("kindlab doctor"))

	fmt.Println(ui.SectionStyle.Render("Host tools"))
	results := checkPrerequisites()
	for _, result := range results.Results {
		detail := result.Version
		if !result.Found {
			detail = ui.DimStyle.Render(result.Tool.InstallURL)
		}
		mark := ui.Mark(result.Found)
		if !result.Found && !result.Tool.Required {
			mark = ui.WarningStyle.Render(ui.WarnMark)
		}
		fmt.Printf("  %s %-10s %s\n", mark, result.Tool.Name, detail)
	}

	fmt.Println(ui.SectionStyle.Render("Cluster"))
	manager := newClusterManager()
	exists, err := manager.Exists(cfg.ClusterName)
	if err != nil {
		return err
	}
	fmt.Printf("  %s kind cluster %s\n", ui.Mark(exists), cfg.ClusterName)

	if !exists {
		fmt.Println(ui.DimStyle.Render("\n  run 'kindlab up' to create the cluster"))
		return results.Error()
	}

	rec, err := newReconciler(cfg)
	if err != nil {
		return err
	}

	fmt.Println(ui.SectionStyle.Render("Services"))
	for _, svc := range append([]service.Definition{service.IngressNginx}, service.Catalog()...) {
		status, err := rec.Status(ctx, svc)
		if err != nil {
			return err
		}
		printSummaryRow(status)
	}

	return results.Error()
}
