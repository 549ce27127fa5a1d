// Package state persists the resource profile of the last successfully
// started cluster so a later run can decide whether the running cluster
// may be reused.
package state

import (
	"fmt"
	"strings"
)

// Profile is the resource sizing requested for the cluster.
type Profile struct {
	// MemoryMB is the cluster VM memory in megabytes.
	MemoryMB int

	// CPUs is the cluster VM CPU count.
	CPUs int
}

// String renders the profile in its canonical persisted form.
func (p Profile) String() string {
	return fmt.Sprintf("memory=%d,cpus=%d", p.MemoryMB, p.CPUs)
}

// ParseProfile parses the canonical "memory=<M>,cpus=<C>" form.
func ParseProfile(s string) (Profile, error) {
	var p Profile
	for _, field := range strings.Split(strings.TrimSpace(s), ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Profile{}, fmt.Errorf("malformed profile field %q", field)
		}
		switch key {
		case "memory":
			if _, err := fmt.Sscanf(value, "%d", &p.MemoryMB); err != nil {
				return Profile{}, fmt.Errorf("malformed memory value %q", value)
			}
		case "cpus":
			if _, err := fmt.Sscanf(value, "%d", &p.CPUs); err != nil {
				return Profile{}, fmt.Errorf("malformed cpus value %q", value)
			}
		default:
			return Profile{}, fmt.Errorf("unknown profile field %q", key)
		}
	}
	if p.MemoryMB <= 0 || p.CPUs <= 0 {
		return Profile{}, fmt.Errorf("incomplete profile %q", s)
	}
	return p, nil
}
