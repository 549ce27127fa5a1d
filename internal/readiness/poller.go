// Package readiness polls pod phases across namespaces until every pod
// reaches a terminal-success phase.
package readiness

import (
	"context"
	"fmt"
	"log"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"
)

// PhaseSet is the set of pod phases counted as done. Which phases are
// terminal-success is a property of the workload being waited on, not a
// universal constant: long-lived mesh components also finish one-shot
// jobs, so their set includes Succeeded.
type PhaseSet map[corev1.PodPhase]struct{}

// NewPhaseSet builds a PhaseSet from the given phases.
func NewPhaseSet(phases ...corev1.PodPhase) PhaseSet {
	set := make(PhaseSet, len(phases))
	for _, phase := range phases {
		set[phase] = struct{}{}
	}
	return set
}

// Contains reports whether phase is in the set.
func (s PhaseSet) Contains(phase corev1.PodPhase) bool {
	_, ok := s[phase]
	return ok
}

// MeshPhases counts running services and completed setup jobs as done.
func MeshPhases() PhaseSet {
	return NewPhaseSet(corev1.PodRunning, corev1.PodSucceeded)
}

// PlatformPhases counts only running pods as done; every platform pod
// is a long-lived service.
func PlatformPhases() PhaseSet {
	return NewPhaseSet(corev1.PodRunning)
}

// Poller waits for all pods in a set of namespaces to converge.
type Poller struct {
	client   kubernetes.Interface
	interval time.Duration
	timeout  time.Duration
}

// NewPoller returns a Poller. A zero timeout means wait forever.
func NewPoller(client kubernetes.Interface, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Poller{client: client, interval: interval, timeout: timeout}
}

// Wait blocks until every pod across namespaces is in a done phase.
//
// A namespace that does not exist yet, or has no pods, contributes zero
// to both counters; zero pods total counts as converged. A pod in the
// Failed phase aborts the wait immediately. List errors are treated as
// transient and retried on the next tick.
func (p *Poller) Wait(ctx context.Context, namespaces []string, done PhaseSet) error {
	condition := func(ctx context.Context) (bool, error) {
		ready, total, err := p.snapshot(ctx, namespaces, done)
		if err != nil {
			return false, err
		}
		if ready < 0 {
			// transient list failure, retry
			return false, nil
		}
		if ready == total {
			log.Printf("All pods ready (%d/%d)", ready, total)
			return true, nil
		}
		log.Printf("Waiting for pods: %d/%d ready", ready, total)
		return false, nil
	}

	if p.timeout > 0 {
		if err := wait.PollUntilContextTimeout(ctx, p.interval, p.timeout, true, condition); err != nil {
			if wait.Interrupted(err) {
				return fmt.Errorf("pods did not become ready within %s: %w", p.timeout, err)
			}
			return err
		}
		return nil
	}
	return wait.PollUntilContextCancel(ctx, p.interval, true, condition)
}

// snapshot counts done and total pods across the namespaces. It returns
// ready == -1 when a list call failed transiently, and a non-nil error
// only for a pod stuck in the Failed phase.
func (p *Poller) snapshot(ctx context.Context, namespaces []string, done PhaseSet) (ready, total int, err error) {
	for _, namespace := range namespaces {
		pods, listErr := p.client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
		if apierrors.IsNotFound(listErr) {
			// Namespace not created yet; it does not block convergence.
			continue
		}
		if listErr != nil {
			return -1, 0, nil
		}
		for i := range pods.Items {
			pod := &pods.Items[i]
			if pod.Status.Phase == corev1.PodFailed {
				return 0, 0, fmt.Errorf("pod %s/%s is in phase Failed", namespace, pod.Name)
			}
			total++
			if done.Contains(pod.Status.Phase) {
				ready++
			}
		}
	}
	return ready, total, nil
}
