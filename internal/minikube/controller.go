// Package minikube controls the lifecycle of the local single-node
// cluster through the minikube CLI.
package minikube

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/mhoffm/knup/internal/execx"
	"github.com/mhoffm/knup/internal/state"
)

// admissionPlugins is the fixed set of API-server admission plugins the
// cluster is started with. MutatingAdmissionWebhook is what makes mesh
// sidecar injection work.
const admissionPlugins = "LimitRanger,NamespaceExists,NamespaceLifecycle,ResourceQuota,ServiceAccount,DefaultStorageClass,MutatingAdmissionWebhook"

// Status holds the subsystem states reported by `minikube status`.
type Status struct {
	Host       string
	Kubelet    string
	APIServer  string
	Kubeconfig string
}

// Healthy reports whether every subsystem is in its good state.
func (s Status) Healthy() bool {
	return s.Host == "Running" &&
		s.Kubelet == "Running" &&
		s.APIServer == "Running" &&
		strings.HasPrefix(s.Kubeconfig, "Correctly Configured")
}

// Controller ensures a cluster is running with the requested resource
// profile. The profile store decides whether a running cluster may be
// reused instead of recreated.
type Controller struct {
	run   execx.Runner
	store state.Store
}

// NewController returns a Controller using the given runner and profile
// store.
func NewController(run execx.Runner, store state.Store) *Controller {
	return &Controller{run: run, store: store}
}

// Status queries `minikube status`. A non-zero exit is not an error:
// minikube exits non-zero for a stopped or missing cluster, which is
// simply an unhealthy status.
func (c *Controller) Status(ctx context.Context) Status {
	out, _ := c.run.Run(ctx, "minikube", "status")
	return parseStatus(string(out))
}

// Ensure makes sure a cluster with the requested profile is running.
//
// The running cluster is reused only when the cached profile matches the
// requested one, force is false, and every status subsystem is healthy.
// In every other case the cluster is destroyed and recreated, and the
// new profile is persisted.
func (c *Controller) Ensure(ctx context.Context, profile state.Profile, force bool, driver string) error {
	cached, ok := c.store.Load()
	if ok && strings.TrimSpace(cached) == profile.String() && !force && c.Status(ctx).Healthy() {
		log.Println("Cluster already started")
		return nil
	}

	// Idempotent: deleting a cluster that does not exist is fine.
	if out, err := c.run.Run(ctx, "minikube", "delete"); err != nil {
		log.Printf("minikube delete: %v (ignored)\nOutput: %s", err, out)
	}

	log.Printf("Starting cluster: driver=%s %s", driver, profile)
	out, err := c.run.Run(ctx, "minikube", "start",
		"--vm-driver="+driver,
		"--memory="+strconv.Itoa(profile.MemoryMB),
		"--cpus="+strconv.Itoa(profile.CPUs),
		"--extra-config=apiserver.enable-admission-plugins="+admissionPlugins,
	)
	if err != nil {
		return fmt.Errorf("minikube start failed: %w\nOutput: %s", err, out)
	}

	if err := c.store.Save(profile.String()); err != nil {
		return fmt.Errorf("failed to persist cluster profile: %w", err)
	}
	return nil
}

// Delete destroys the cluster and forgets the cached profile.
func (c *Controller) Delete(ctx context.Context) error {
	out, err := c.run.Run(ctx, "minikube", "delete")
	if err != nil {
		return fmt.Errorf("minikube delete failed: %w\nOutput: %s", err, out)
	}
	return c.store.Clear()
}

// parseStatus parses `minikube status` output of the form
//
//	host: Running
//	kubelet: Running
//	apiserver: Running
//	kubeconfig: Correctly Configured: pointing to minikube-vm at ...
func parseStatus(out string) Status {
	var status Status
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "host", "minikube":
			status.Host = value
		case "kubelet", "cluster":
			status.Kubelet = value
		case "apiserver":
			status.APIServer = value
		case "kubeconfig", "kubectl":
			status.Kubeconfig = value
		}
	}
	return status
}
