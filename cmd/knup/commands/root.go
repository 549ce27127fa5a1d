// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Root returns the root command for the knup CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knup",
		Short: "Bring up a local Knative-on-Istio cluster with minikube",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return fmt.Errorf("command required, see 'knup --help'")
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(Start())
	cmd.AddCommand(Delete())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}
