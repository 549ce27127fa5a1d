// Package config defines the knup configuration and its YAML loader.
package config

import (
	"fmt"
	"time"
)

// Default cluster sizing. The admission plugin set is fixed because the
// mesh sidecar injector requires MutatingAdmissionWebhook and the rest
// match what the platform manifests assume.
const (
	DefaultDriver   = "virtualbox"
	DefaultMemoryMB = 16384
	DefaultCPUs     = 8

	DefaultPollInterval = 5 * time.Second
)

// Default manifest sources and namespaces for the mesh and platform
// layers. All of them can be overridden from the config file.
var (
	defaultMeshCRDs         = "https://raw.githubusercontent.com/knative/serving/main/third_party/istio-stable/istio-crds.yaml"
	defaultMeshControlPlane = "https://raw.githubusercontent.com/knative/serving/main/third_party/istio-stable/istio.yaml"

	defaultPlatformManifests = []string{
		"https://github.com/knative/serving/releases/latest/download/serving.yaml",
		"https://github.com/knative/eventing/releases/latest/download/eventing.yaml",
		"https://github.com/knative/serving/releases/latest/download/monitoring.yaml",
	}

	defaultPlatformNamespaces = []string{
		"knative-serving",
		"knative-eventing",
		"knative-monitoring",
	}
)

// Mesh configures the service-mesh layer installation.
type Mesh struct {
	// CRDs is the manifest source registering the mesh's custom resources.
	CRDs string `mapstructure:"crds"`

	// ControlPlane is the manifest source for the mesh control plane.
	// It is fetched, rewritten, and applied from a stream.
	ControlPlane string `mapstructure:"controlPlane"`

	// Namespace is where the mesh control plane pods run.
	Namespace string `mapstructure:"namespace"`
}

// Platform configures the serverless platform installation.
type Platform struct {
	// Manifests is the ordered list of manifest sources to apply.
	Manifests []string `mapstructure:"manifests"`

	// Namespaces are polled for readiness after the apply.
	Namespaces []string `mapstructure:"namespaces"`
}

// Config is the complete knup configuration.
type Config struct {
	// Driver is the minikube VM driver.
	Driver string `mapstructure:"driver"`

	// MemoryMB is the cluster VM memory in megabytes.
	MemoryMB int `mapstructure:"memory"`

	// CPUs is the cluster VM CPU count.
	CPUs int `mapstructure:"cpus"`

	// PollInterval is the delay between readiness polls.
	PollInterval time.Duration `mapstructure:"-"`

	// Timeout bounds each readiness wait. Zero means wait forever.
	Timeout time.Duration `mapstructure:"-"`

	Mesh     Mesh     `mapstructure:"mesh"`
	Platform Platform `mapstructure:"platform"`
}

// Default returns a Config populated with every default value.
func Default() *Config {
	return &Config{
		Driver:       DefaultDriver,
		MemoryMB:     DefaultMemoryMB,
		CPUs:         DefaultCPUs,
		PollInterval: DefaultPollInterval,
		Mesh: Mesh{
			CRDs:         defaultMeshCRDs,
			ControlPlane: defaultMeshControlPlane,
			Namespace:    "istio-system",
		},
		Platform: Platform{
			Manifests:  defaultPlatformManifests,
			Namespaces: defaultPlatformNamespaces,
		},
	}
}

// Validate rejects configurations that cannot produce a working cluster.
func (c *Config) Validate() error {
	if c.MemoryMB < 1024 {
		return fmt.Errorf("memory must be at least 1024 MB, got %d", c.MemoryMB)
	}
	if c.CPUs < 1 {
		return fmt.Errorf("cpus must be at least 1, got %d", c.CPUs)
	}
	if c.Driver == "" {
		return fmt.Errorf("driver must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Mesh.CRDs == "" || c.Mesh.ControlPlane == "" {
		return fmt.Errorf("mesh manifest sources must not be empty")
	}
	if c.Mesh.Namespace == "" {
		return fmt.Errorf("mesh namespace must not be empty")
	}
	if len(c.Platform.Manifests) == 0 {
		return fmt.Errorf("platform manifest list must not be empty")
	}
	if len(c.Platform.Namespaces) == 0 {
		return fmt.Errorf("platform namespace list must not be empty")
	}
	return nil
}
