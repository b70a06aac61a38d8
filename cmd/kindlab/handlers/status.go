package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/kindlab/internal/service"
	"github.com/imamik/kindlab/internal/ui"
)

// Status reports one service in detail, or a one-line summary per catalog
// service when serviceName is empty.
func Status(ctx context.Context, envFile, serviceName string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	rec, err := newReconciler(cfg)
	if err != nil {
		return err
	}

	if serviceName != "" {
		svc, err := service.Lookup(serviceName)
		if err != nil {
			return err
		}
		status, err := rec.Status(ctx, svc)
		if err != nil {
			return err
		}
		printServiceStatus(status)
		return nil
	}

	fmt.Println(ui.TitleStyle.Render("kindlab services"))
	for _, svc := range service.Catalog() {
		status, err := rec.Status(ctx, svc)
		if err != nil {
			return err
		}
		printSummaryRow(status)
	}
	return nil
}

func printSummaryRow(status *service.Status) {
	switch {
	case status.Release == nil:
		fmt.Printf("  %s %-12s %s\n", ui.DimStyle.Render(ui.Pending), status.Service, ui.DimStyle.Render("not installed"))
	case status.Ready:
		fmt.Printf("  %s %-12s %s\n", ui.Mark(true), status.Service, releaseSummary(status))
	default:
		fmt.Printf("  %s %-12s %s\n", ui.WarningStyle.Render(ui.WarnMark), status.Service, releaseSummary(status)+", pods not ready")
	}
}

func releaseSummary(status *service.Status) string {
	rel := status.Release
	return fmt.Sprintf("%s-%s (%s)", rel.Chart.Metadata.Name, rel.Chart.Metadata.Version, rel.Info.Status)
}

func printServiceStatus(status *service.Status) {
	fmt.Println(ui.TitleStyle.Render(status.Service))

	fmt.Println(ui.SectionStyle.Render("Release"))
	if status.Release == nil {
		fmt.Println("  " + ui.DimStyle.Render("not installed"))
	} else {
		rel := status.Release
		fmt.Printf("  name:     %s\n", rel.Name)
		fmt.Printf("  chart:    %s-%s\n", rel.Chart.Metadata.Name, rel.Chart.Metadata.Version)
		fmt.Printf("  status:   %s\n", rel.Info.Status)
		fmt.Printf("  revision: %d\n", rel.Version)
	}

	fmt.Println(ui.SectionStyle.Render("Readiness"))
	fmt.Printf("  %s pods matching selector\n", ui.Mark(status.Ready))
	if status.TLSSecret != "" {
		freshness := "matches local certificate"
		if !status.TLSCurrent {
			freshness = "stale, run 'kindlab upgrade " + status.Service + "'"
		}
		fmt.Printf("  %s TLS secret %s %s\n", ui.Mark(status.TLSCurrent), status.TLSSecret, freshness)
	}

	if status.Inventory == nil {
		fmt.Println(ui.SectionStyle.Render("Resources"))
		fmt.Printf("  %s\n", ui.DimStyle.Render("namespace "+status.Namespace+" does not exist"))
		return
	}

	inv := status.Inventory

	fmt.Println(ui.SectionStyle.Render("Pods"))
	for i := range inv.Pods {
		pod := &inv.Pods[i]
		fmt.Printf("  %-40s %s\n", pod.Name, pod.Status.Phase)
	}

	fmt.Println(ui.SectionStyle.Render("Services"))
	for i := range inv.Services {
		svc := &inv.Services[i]
		fmt.Printf("  %-40s %s\n", svc.Name, svc.Spec.ClusterIP)
	}

	fmt.Println(ui.SectionStyle.Render("Ingresses"))
	for i := range inv.Ingresses {
		ing := &inv.Ingresses[i]
		var hosts []string
		for _, rule := range ing.Spec.Rules {
			hosts = append(hosts, rule.Host)
		}
		fmt.Printf("  %-40s %s\n", ing.Name, strings.Join(hosts, ", "))
	}

	fmt.Println(ui.SectionStyle.Render("Secrets"))
	for i := range inv.Secrets {
		fmt.Printf("  %-40s %s\n", inv.Secrets[i].Name, inv.Secrets[i].Type)
	}

	fmt.Println(ui.SectionStyle.Render("PVCs"))
	for i := range inv.PVCs {
		fmt.Printf("  %-40s %s\n", inv.PVCs[i].Name, inv.PVCs[i].Status.Phase)
	}
}
