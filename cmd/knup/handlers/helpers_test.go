package handlers

import (
	"io"
	"os"
	"testing"
)

// saveAndRestoreFactories snapshots every factory variable and restores
// it when the test finishes.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origRunner := newRunner
	origStore := newStore
	origKubeClient := newKubeClient
	origCheck := checkPrerequisites
	origHTTP := meshHTTPClient
	origTools := doctorTools

	t.Cleanup(func() {
		newRunner = origRunner
		newStore = origStore
		newKubeClient = origKubeClient
		checkPrerequisites = origCheck
		meshHTTPClient = origHTTP
		doctorTools = origTools
	})
}

// captureOutput runs fn with os.Stdout redirected and returns what it
// printed.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	os.Stdout = orig
	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(out)
}
