// Package commands defines the kindlab CLI command tree and flag bindings.
//
// Commands handle argument parsing and validation only; execution is
// delegated to the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the kindlab CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kindlab",
		Short:         "Local Kubernetes development environment on Kind",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("env-file", "e", ".env", "Path to the environment file")

	// Environment lifecycle
	cmd.AddCommand(Up())
	cmd.AddCommand(Down())
	cmd.AddCommand(Clean())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Domain())

	// Service lifecycle
	cmd.AddCommand(Install())
	cmd.AddCommand(Upgrade())
	cmd.AddCommand(Uninstall())
	cmd.AddCommand(Status())
	cmd.AddCommand(Logs())
	cmd.AddCommand(Test())

	// Utility
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// envFile reads the inherited env-file flag.
func envFile(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return ".env"
	}
	return path
}
