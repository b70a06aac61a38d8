package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kindlab/cmd/kindlab/handlers"
)

// Up returns the up command.
func Up() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create the Kind cluster with ingress and the status page",
		Long: `Up provisions the local development cluster.

It checks host prerequisites (docker, mkcert, brew), creates the Kind
cluster if it does not exist, installs the ingress-nginx controller, and
deploys a status page at https://status.<domain>.

Every step is idempotent: re-running up after a partial failure resumes
where it left off, and an existing cluster is reported as a warning, not
an error.

Run 'sudo kindlab domain configure' first so *.<domain> resolves to
localhost with a trusted certificate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), envFile(cmd))
		},
	}
}
