// Package serving installs the Knative serverless platform onto a
// cluster that already runs the mesh.
package serving

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mhoffm/knup/internal/config"
	"github.com/mhoffm/knup/internal/readiness"
)

// crdSelector matches the documents in the release manifests that
// install custom resource definitions.
const crdSelector = "knative.dev/crd-install=true"

// toleratedApplyError is the one failure the CRD pass may produce on a
// fresh cluster: the serving manifest references a mesh kind whose CRDs
// register asynchronously. The full apply that follows is authoritative.
const toleratedApplyError = "no matches for kind"

// Applier is the subset of the kubectl client the installer needs.
type Applier interface {
	ApplySelector(ctx context.Context, selector string, sources ...string) ([]byte, error)
	ApplyAll(ctx context.Context, sources ...string) error
}

// Waiter blocks until all pods in the namespaces are done.
type Waiter interface {
	Wait(ctx context.Context, namespaces []string, done readiness.PhaseSet) error
}

// Installer applies the platform manifests in two passes and waits for
// the platform namespaces to become ready.
type Installer struct {
	apply Applier
	wait  Waiter
	cfg   config.Platform
}

// NewInstaller returns an Installer.
func NewInstaller(apply Applier, wait Waiter, cfg config.Platform) *Installer {
	return &Installer{apply: apply, wait: wait, cfg: cfg}
}

// Install runs the two-phase apply protocol:
//
//  1. Apply only CRD-install documents across the whole manifest list.
//     The one known CRD-registration race is tolerated; anything else
//     is fatal.
//  2. Apply the full list; any failure is fatal.
//
// It then waits for every platform namespace using the strict phase set.
func (i *Installer) Install(ctx context.Context) error {
	log.Println("Installing platform CRDs...")
	out, err := i.apply.ApplySelector(ctx, crdSelector, i.cfg.Manifests...)
	if err != nil {
		if !strings.Contains(string(out), toleratedApplyError) {
			return fmt.Errorf("failed to apply platform CRDs: %w", err)
		}
		log.Println("CRD pass hit pending registration, continuing with full apply")
	}

	log.Println("Installing platform components...")
	if err := i.apply.ApplyAll(ctx, i.cfg.Manifests...); err != nil {
		return fmt.Errorf("failed to apply platform manifests: %w", err)
	}

	log.Println("Waiting for platform pods...")
	return i.wait.Wait(ctx, i.cfg.Namespaces, readiness.PlatformPhases())
}
