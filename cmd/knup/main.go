// Package main is the entry point for the knup CLI.
//
// knup brings up a local single-node Kubernetes cluster with minikube,
// installs the Istio service mesh, then installs Knative on top and
// waits until every component reports ready.
//
// Commands: start, delete, doctor, version.
//
// For detailed usage information, run:
//
//	knup --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mhoffm/knup/cmd/knup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
