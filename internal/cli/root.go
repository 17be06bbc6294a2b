// Package cli wires the command surface of the unifi-timelapse daemon.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/raoulx24/unifi-timelapse/internal/version"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "unifi-timelapse",
		Short:         "UniFi Protect snapshot archiver and timelapse builder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewVersionCmd())

	cmd.Version = version.Version

	return cmd
}
