package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kindlab/cmd/kindlab/handlers"
)

// Down returns the down command.
func Down() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Delete the Kind cluster",
		Long: `Down deletes the Kind cluster and removes its context from the
kubeconfig. Host DNS and TLS configuration is left untouched; use
'kindlab clean' to remove everything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Down(cmd.Context(), envFile(cmd))
		},
	}
}
