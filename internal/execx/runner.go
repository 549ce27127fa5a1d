// Package execx wraps invocation of external command-line tools.
//
// Both minikube and kubectl are driven through the Runner interface so
// that command output can be scripted in tests without a live cluster.
package execx

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes external commands and returns their combined output.
type Runner interface {
	// Run executes name with args and returns combined stdout/stderr.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// RunInput is Run with stdin supplied from input.
	RunInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error)
}

// Local runs commands on the local host via os/exec.
type Local struct{}

// NewLocal returns a Runner backed by os/exec.
func NewLocal() *Local {
	return &Local{}
}

// Run executes the command and returns its combined output.
func (l *Local) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - command names and arguments come from internal callers, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// RunInput executes the command with input on stdin and returns its combined output.
func (l *Local) RunInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	// #nosec G204 - command names and arguments come from internal callers, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(input)
	return cmd.CombinedOutput()
}
