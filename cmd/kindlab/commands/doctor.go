package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kindlab/cmd/kindlab/handlers"
)

// Doctor returns the doctor command.
func Doctor() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose host tools, cluster, and service state",
		Long: `Doctor checks the host tools kindlab depends on, whether the Kind
cluster exists, and the release state of every managed service. It never
changes anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), envFile(cmd))
		},
	}
}
