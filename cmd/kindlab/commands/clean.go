package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kindlab/cmd/kindlab/handlers"
)

// Clean returns the clean command.
func Clean() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the cluster and remove host DNS/TLS configuration",
		Long: `Clean tears the whole environment down: the Kind cluster, the
dnsmasq and resolver entries for the local domain, and the state file.

Removing the host configuration requires root. Without it, the cluster
is still deleted and the host part is skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Clean(cmd.Context(), envFile(cmd))
		},
	}
}
