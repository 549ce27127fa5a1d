// Package handlers implements the execution logic behind the CLI
// commands. The cobra definitions in the commands package delegate here.
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/mhoffm/knup/internal/config"
	"github.com/mhoffm/knup/internal/execx"
	"github.com/mhoffm/knup/internal/kubectl"
	"github.com/mhoffm/knup/internal/mesh"
	"github.com/mhoffm/knup/internal/minikube"
	"github.com/mhoffm/knup/internal/prereq"
	"github.com/mhoffm/knup/internal/readiness"
	"github.com/mhoffm/knup/internal/serving"
	"github.com/mhoffm/knup/internal/state"
)

// defaultConfigFile is picked up from the working directory when no
// --config flag is given.
const defaultConfigFile = "knup.yaml"

// Factory function variables - can be replaced in tests.
var (
	// newRunner creates the command runner for minikube and kubectl.
	newRunner = func() execx.Runner { return execx.NewLocal() }

	// newStore creates the profile store.
	newStore = func() (state.Store, error) {
		dir, err := state.DefaultDir()
		if err != nil {
			return nil, err
		}
		return state.NewFileStore(dir), nil
	}

	// newKubeClient builds a clientset from the default kubeconfig
	// loading rules. minikube start writes that kubeconfig.
	newKubeClient = func() (kubernetes.Interface, error) {
		rules := clientcmd.NewDefaultClientConfigLoadingRules()
		restCfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
		return kubernetes.NewForConfig(restCfg)
	}

	// checkPrerequisites verifies the required client tools exist.
	checkPrerequisites = func() error {
		return prereq.Check(prereq.DefaultTools()).Error()
	}

	// meshHTTPClient fetches the mesh control-plane manifest. Nil means
	// http.DefaultClient.
	meshHTTPClient *http.Client
)

// StartOptions carries the start command's flag values. The *Set fields
// record whether a flag was given explicitly; explicit flags win over
// config-file values.
type StartOptions struct {
	ConfigPath string
	Force      bool
	Driver     string
	MemoryMB   int
	CPUs       int
	Timeout    time.Duration

	DriverSet  bool
	MemorySet  bool
	CPUsSet    bool
	TimeoutSet bool
}

// Start handles the start command: ensure the cluster, install the
// mesh, install the platform, wait for everything to come up.
func Start(ctx context.Context, opts StartOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := checkPrerequisites(); err != nil {
		return err
	}

	runner := newRunner()
	store, err := newStore()
	if err != nil {
		return err
	}

	profile := state.Profile{MemoryMB: cfg.MemoryMB, CPUs: cfg.CPUs}
	controller := minikube.NewController(runner, store)
	if err := controller.Ensure(ctx, profile, opts.Force, cfg.Driver); err != nil {
		return err
	}

	client, err := newKubeClient()
	if err != nil {
		return err
	}
	poller := readiness.NewPoller(client, cfg.PollInterval, cfg.Timeout)
	kube := kubectl.NewClient(runner)

	if err := mesh.NewInstaller(kube, poller, meshHTTPClient, cfg.Mesh).Install(ctx); err != nil {
		return err
	}
	if err := serving.NewInstaller(kube, poller, cfg.Platform).Install(ctx); err != nil {
		return err
	}

	log.Println("All components ready")
	return nil
}

// loadConfig loads the config file at path, falling back to knup.yaml
// in the working directory, then to the built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return config.Default(), nil
		}
		path = defaultConfigFile
	}
	return config.LoadFile(path)
}

func applyFlagOverrides(cfg *config.Config, opts StartOptions) {
	if opts.DriverSet {
		cfg.Driver = opts.Driver
	}
	if opts.MemorySet {
		cfg.MemoryMB = opts.MemoryMB
	}
	if opts.CPUsSet {
		cfg.CPUs = opts.CPUs
	}
	if opts.TimeoutSet {
		cfg.Timeout = opts.Timeout
	}
}
