package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mhoffm/knup/cmd/knup/handlers"
	"github.com/mhoffm/knup/internal/config"
)

// Start returns the command that brings the whole stack up.
//
// Optional flags:
//
//	--force, -f:  recreate the cluster even if a matching one is running
//	--driver, -d: minikube VM driver (default: virtualbox)
//	--memory, -m: cluster VM memory in MB (default: 16384)
//	--cpus, -c:   cluster VM CPU count (default: 8)
//	--config:     path to a knup.yaml overriding the defaults
//	--timeout:    maximum readiness wait, 0 waits forever (default: 0)
func Start() *cobra.Command {
	var opts handlers.StartOptions

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the cluster and install the mesh and platform layers",
		Long: `Start brings up a local single-node Kubernetes cluster with minikube,
installs the Istio service mesh, then installs Knative on top and waits
until every component reports ready.

A running cluster is reused when it is healthy and was started with the
same memory and CPU profile; pass --force to recreate it regardless.

Examples:
  # Bring everything up with the defaults
  knup start

  # Smaller cluster on the kvm2 driver
  knup start -d kvm2 -m 8192 -c 4

  # Recreate from scratch, give up after 30 minutes
  knup start -f --timeout 30m`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.DriverSet = cmd.Flags().Changed("driver")
			opts.MemorySet = cmd.Flags().Changed("memory")
			opts.CPUsSet = cmd.Flags().Changed("cpus")
			opts.TimeoutSet = cmd.Flags().Changed("timeout")
			return handlers.Start(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Recreate the cluster even if a matching one is running")
	cmd.Flags().StringVarP(&opts.Driver, "driver", "d", config.DefaultDriver, "minikube VM driver")
	cmd.Flags().IntVarP(&opts.MemoryMB, "memory", "m", config.DefaultMemoryMB, "Cluster VM memory in MB")
	cmd.Flags().IntVarP(&opts.CPUs, "cpus", "c", config.DefaultCPUs, "Cluster VM CPU count")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (default: knup.yaml if present)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0*time.Second, "Maximum readiness wait, 0 waits forever")

	return cmd
}
