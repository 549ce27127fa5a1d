package commands

import (
	"github.com/spf13/cobra"

	"github.com/mhoffm/knup/cmd/knup/handlers"
)

// Delete returns the command that destroys the cluster.
func Delete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Destroy the cluster and forget its cached profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Delete(cmd.Context())
		},
	}
}
