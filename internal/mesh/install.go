// Package mesh installs the Istio service mesh onto the cluster.
package mesh

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/mhoffm/knup/internal/config"
	"github.com/mhoffm/knup/internal/readiness"
)

// The upstream control-plane manifest exposes the ingress gateway as a
// LoadBalancer service, which never gets an address inside a minikube
// VM. Every occurrence is rewritten to NodePort before applying; the
// replace is a blind byte substitution, all other content is preserved.
var (
	exposureModeOld = []byte("LoadBalancer")
	exposureModeNew = []byte("NodePort")
)

// injectionLabel enables automatic sidecar injection for workloads in
// the default namespace.
const injectionLabel = "istio-injection=enabled"

// Applier is the subset of the kubectl client the installer needs.
type Applier interface {
	Apply(ctx context.Context, source string) error
	ApplyStream(ctx context.Context, manifest []byte) error
	LabelNamespace(ctx context.Context, namespace, label string) error
}

// Waiter blocks until all pods in the namespaces are done.
type Waiter interface {
	Wait(ctx context.Context, namespaces []string, done readiness.PhaseSet) error
}

// Installer applies the mesh CRDs and control plane and waits for the
// control-plane pods to come up.
type Installer struct {
	apply Applier
	wait  Waiter
	http  *http.Client
	cfg   config.Mesh
}

// NewInstaller returns an Installer. httpClient may be nil, in which
// case http.DefaultClient is used.
func NewInstaller(apply Applier, wait Waiter, httpClient *http.Client, cfg config.Mesh) *Installer {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Installer{apply: apply, wait: wait, http: httpClient, cfg: cfg}
}

// Install applies the mesh manifests, labels the default namespace for
// sidecar injection, and waits for the mesh namespace to become ready.
// Every failure is fatal.
func (i *Installer) Install(ctx context.Context) error {
	log.Println("Installing mesh CRDs...")
	if err := i.apply.Apply(ctx, i.cfg.CRDs); err != nil {
		return fmt.Errorf("failed to apply mesh CRDs: %w", err)
	}

	log.Println("Installing mesh control plane...")
	doc, err := i.fetch(ctx, i.cfg.ControlPlane)
	if err != nil {
		return fmt.Errorf("failed to fetch control-plane manifest: %w", err)
	}
	if err := i.apply.ApplyStream(ctx, rewriteExposureMode(doc)); err != nil {
		return fmt.Errorf("failed to apply mesh control plane: %w", err)
	}

	if err := i.apply.LabelNamespace(ctx, "default", injectionLabel); err != nil {
		return fmt.Errorf("failed to label default namespace: %w", err)
	}

	log.Println("Waiting for mesh pods...")
	return i.wait.Wait(ctx, []string{i.cfg.Namespace}, readiness.MeshPhases())
}

// rewriteExposureMode replaces every literal occurrence of the
// LoadBalancer exposure mode with NodePort.
func rewriteExposureMode(doc []byte) []byte {
	return bytes.ReplaceAll(doc, exposureModeOld, exposureModeNew)
}

func (i *Installer) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := i.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
