package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/kindlab/cmd/kindlab/handlers"
)

// Domain returns the domain command with its configure and clean
// subcommands.
func Domain() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Manage host DNS and TLS for the local domain",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "configure",
		Short: "Point *.<domain> at localhost and issue a trusted certificate",
		Long: `Configure writes a dnsmasq wildcard rule and a macOS resolver entry
for the local domain, restarts dnsmasq, flushes the DNS cache, and issues
a wildcard certificate with mkcert.

If the domain changed since the last run, the previous domain's DNS
configuration is removed first.

Must run as root (sudo); the certificate is issued as the invoking user
because mkcert's CA lives in the per-user trust store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.DomainConfigure(cmd.Context(), envFile(cmd))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove host DNS configuration for the local domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.DomainClean(cmd.Context(), envFile(cmd))
		},
	})

	return cmd
}
