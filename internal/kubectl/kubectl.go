// Package kubectl wraps the kubectl CLI for manifest application and
// namespace labeling. Pod status is read through client-go instead; see
// the readiness package.
package kubectl

import (
	"context"
	"fmt"

	"github.com/mhoffm/knup/internal/execx"
)

// Client issues declarative operations against the cluster via kubectl.
type Client struct {
	run execx.Runner
}

// NewClient returns a Client backed by the given runner.
func NewClient(run execx.Runner) *Client {
	return &Client{run: run}
}

// Apply runs `kubectl apply -f source` where source is a URL or path.
func (c *Client) Apply(ctx context.Context, source string) error {
	out, err := c.run.Run(ctx, "kubectl", "apply", "-f", source)
	if err != nil {
		return fmt.Errorf("kubectl apply -f %s failed: %w\nOutput: %s", source, err, out)
	}
	return nil
}

// ApplyStream applies a manifest document supplied on stdin.
func (c *Client) ApplyStream(ctx context.Context, manifest []byte) error {
	out, err := c.run.RunInput(ctx, manifest, "kubectl", "apply", "-f", "-")
	if err != nil {
		return fmt.Errorf("kubectl apply from stream failed: %w\nOutput: %s", err, out)
	}
	return nil
}

// ApplySelector applies only the resources in sources that match the
// label selector, in a single kubectl call. The combined output is
// returned so callers can classify expected partial failures.
func (c *Client) ApplySelector(ctx context.Context, selector string, sources ...string) ([]byte, error) {
	args := []string{"apply", "-l", selector}
	for _, source := range sources {
		args = append(args, "-f", source)
	}
	out, err := c.run.Run(ctx, "kubectl", args...)
	if err != nil {
		return out, fmt.Errorf("kubectl apply -l %s failed: %w\nOutput: %s", selector, err, out)
	}
	return out, nil
}

// ApplyAll applies every source in a single kubectl call.
func (c *Client) ApplyAll(ctx context.Context, sources ...string) error {
	args := []string{"apply"}
	for _, source := range sources {
		args = append(args, "-f", source)
	}
	out, err := c.run.Run(ctx, "kubectl", args...)
	if err != nil {
		return fmt.Errorf("kubectl apply failed: %w\nOutput: %s", err, out)
	}
	return nil
}

// LabelNamespace sets a label on a namespace, overwriting any existing
// value.
func (c *Client) LabelNamespace(ctx context.Context, namespace, label string) error {
	out, err := c.run.Run(ctx, "kubectl", "label", "namespace", namespace, label, "--overwrite")
	if err != nil {
		return fmt.Errorf("kubectl label namespace %s %s failed: %w\nOutput: %s", namespace, label, err, out)
	}
	return nil
}
