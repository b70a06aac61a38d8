package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/kindlab/cmd/kindlab/handlers"
	"github.com/imamik/kindlab/internal/service"
)

// serviceNames is the help-text listing of installable services.
func serviceNames() string {
	return strings.Join(service.Names(), ", ")
}

// serviceArg validates the single <service> positional argument.
func serviceArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if _, err := service.Lookup(args[0]); err != nil {
		return err
	}
	return nil
}

// Install returns the install command.
func Install() *cobra.Command {
	return &cobra.Command{
		Use:   "install <service>",
		Short: "Install a service into the cluster",
		Long: fmt.Sprintf(`Install deploys a service with Helm into its own namespace,
refreshing its TLS secret from the current certificate first.

Installing an already-installed service is a warning no-op, so install is
safe to re-run.

Services: %s`, serviceNames()),
		Args: serviceArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Install(cmd.Context(), envFile(cmd), args[0])
		},
	}
}

// Upgrade returns the upgrade command.
func Upgrade() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <service>",
		Short: "Upgrade an installed service",
		Long: fmt.Sprintf(`Upgrade re-renders a service's values, refreshes its TLS secret,
and runs a Helm upgrade. Upgrading a service that is not installed is a
warning no-op.

Services: %s`, serviceNames()),
		Args: serviceArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Upgrade(cmd.Context(), envFile(cmd), args[0])
		},
	}
}

// Uninstall returns the uninstall command.
func Uninstall() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <service>",
		Short: "Uninstall a service and delete its namespace",
		Long: fmt.Sprintf(`Uninstall removes a service's Helm release and deletes its
namespace. Uninstalling a service that is not installed is a warning
no-op.

Services: %s`, serviceNames()),
		Args: serviceArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Uninstall(cmd.Context(), envFile(cmd), args[0])
		},
	}
}

// Status returns the status command.
func Status() *cobra.Command {
	return &cobra.Command{
		Use:   "status [service]",
		Short: "Report release, resources, and readiness",
		Long: fmt.Sprintf(`Status reports the Helm release, the namespace's pods, services,
ingresses, secrets, and PVCs, and whether the service's pods are ready.
Without an argument it prints a one-line summary per service.

Services: %s`, serviceNames()),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return handlers.Status(cmd.Context(), envFile(cmd), name)
		},
	}
}

// Logs returns the logs command.
func Logs() *cobra.Command {
	return &cobra.Command{
		Use:   "logs <service>",
		Short: "Show recent logs from a service's pods",
		Args:  serviceArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Logs(cmd.Context(), envFile(cmd), args[0])
		},
	}
}

// Test returns the test command.
func Test() *cobra.Command {
	return &cobra.Command{
		Use:   "test <service>",
		Short: "Run a service's smoke test",
		Long: `Test runs an end-to-end check against the running service: redis
answers PONG to an in-pod redis-cli ping, minio lists the artifact
bucket, postgresql answers SELECT 1.`,
		Args: serviceArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Test(cmd.Context(), envFile(cmd), args[0])
		},
	}
}
