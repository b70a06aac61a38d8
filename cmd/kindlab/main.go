// Package main is the entry point for the kindlab CLI.
//
// kindlab provisions a local Kubernetes development environment on macOS:
// a Kind cluster with ingress, a catalog of Helm-managed services (ArgoCD,
// MinIO, PostgreSQL, Redis, Kafka, MLflow, JupyterHub), and host-level DNS
// (dnsmasq) and TLS (mkcert) so every service is reachable at
// https://<service>.<domain>.
//
// For detailed usage information, run:
//
//	kindlab --help
package main

import (
	"os"

	"github.com/imamik/kindlab/cmd/kindlab/commands"
	"github.com/imamik/kindlab/internal/ui"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		ui.Failf("%v", err)
		os.Exit(1)
	}
}
