package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyKeepsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDriver, cfg.Driver)
	assert.Equal(t, DefaultMemoryMB, cfg.MemoryMB)
	assert.Equal(t, DefaultCPUs, cfg.CPUs)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, "istio-system", cfg.Mesh.Namespace)
	assert.Len(t, cfg.Platform.Manifests, 3)
	assert.Equal(t, []string{"knative-serving", "knative-eventing", "knative-monitoring"}, cfg.Platform.Namespaces)
}

func TestParseOverrides(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(`
driver: kvm2
memory: 8192
cpus: 4
pollInterval: 2s
timeout: 30m
mesh:
  namespace: mesh-system
platform:
  manifests:
    - https://example.com/serving.yaml
  namespaces:
    - knative-serving
`))
	require.NoError(t, err)

	assert.Equal(t, "kvm2", cfg.Driver)
	assert.Equal(t, 8192, cfg.MemoryMB)
	assert.Equal(t, 4, cfg.CPUs)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Minute, cfg.Timeout)
	assert.Equal(t, "mesh-system", cfg.Mesh.Namespace)
	assert.Equal(t, []string{"https://example.com/serving.yaml"}, cfg.Platform.Manifests)

	// Unset mesh sources keep their defaults.
	assert.NotEmpty(t, cfg.Mesh.CRDs)
	assert.NotEmpty(t, cfg.Mesh.ControlPlane)
}

func TestParseRejectsInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		yaml string
	}{
		{name: "memory too small", yaml: "memory: 512"},
		{name: "zero cpus", yaml: "cpus: 0"},
		{name: "bad duration", yaml: "timeout: soon"},
		{name: "non-string duration", yaml: "pollInterval: 5"},
		{name: "not yaml", yaml: ":\n-"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("memory: 4096\ncpus: 2\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.MemoryMB)
	assert.Equal(t, 2, cfg.CPUs)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()
	_, err := LoadFile("/does/not/exist/knup.yaml")
	assert.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}
