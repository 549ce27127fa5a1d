package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mhoffm/knup/internal/minikube"
	"github.com/mhoffm/knup/internal/prereq"
)

// doctorTools lists the tools doctor reports on - replaceable in tests.
var doctorTools = prereq.DefaultTools

// Doctor handles the doctor command.
//
// It reports which required tools are present, the state of each
// cluster subsystem, and the cached sizing profile, without changing
// anything.
func Doctor(ctx context.Context) error {
	printHeader("Client tools")
	results := prereq.Check(doctorTools())
	for _, result := range results.Results {
		extra := result.Path
		if !result.Found {
			extra = "not found, see " + result.Tool.InstallURL
		}
		printRow(result.Tool.Name, result.Found, extra)
	}
	if results.HasErrors() {
		return results.Error()
	}

	store, err := newStore()
	if err != nil {
		return err
	}

	printHeader("Cluster")
	status := minikube.NewController(newRunner(), store).Status(ctx)
	printRow("host", status.Host == "Running", status.Host)
	printRow("kubelet", status.Kubelet == "Running", status.Kubelet)
	printRow("apiserver", status.APIServer == "Running", status.APIServer)
	printRow("kubeconfig", strings.HasPrefix(status.Kubeconfig, "Correctly Configured"), status.Kubeconfig)

	if profile, ok := store.Load(); ok {
		printRow("cached profile", true, strings.TrimSpace(profile))
	} else {
		printRow("cached profile", false, "none")
	}

	return nil
}

func printHeader(title string) {
	fmt.Println()
	fmt.Printf("  %s\n", title)
	fmt.Println("  " + strings.Repeat("═", len(title)))
}

func printRow(name string, ready bool, extra string) {
	indicator := okIndicator(ready)
	if extra != "" {
		fmt.Printf("  %s  %-16s %s\n", indicator, name, extra)
	} else {
		fmt.Printf("  %s  %s\n", indicator, name)
	}
}

func okIndicator(ready bool) string {
	if isInteractiveTTY() {
		if ready {
			return "✅" // green check
		}
		return "❌" // red X
	}
	if ready {
		return "ok "
	}
	return "err"
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
