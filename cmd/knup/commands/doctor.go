package commands

import (
	"github.com/spf13/cobra"

	"github.com/mhoffm/knup/cmd/knup/handlers"
)

// Doctor returns the command for diagnosing the local setup.
//
// It checks that the required client tools are installed and, when a
// cluster exists, shows the state of each cluster subsystem.
func Doctor() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check required tools and cluster health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context())
		},
	}
}
