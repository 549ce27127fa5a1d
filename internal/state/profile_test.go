package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "memory=16384,cpus=8", Profile{MemoryMB: 16384, CPUs: 8}.String())
	assert.Equal(t, "memory=8192,cpus=4", Profile{MemoryMB: 8192, CPUs: 4}.String())
}

func TestParseProfile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		want    Profile
		wantErr bool
	}{
		{name: "canonical", in: "memory=16384,cpus=8", want: Profile{MemoryMB: 16384, CPUs: 8}},
		{name: "trailing newline", in: "memory=8192,cpus=4\n", want: Profile{MemoryMB: 8192, CPUs: 4}},
		{name: "missing cpus", in: "memory=8192", wantErr: true},
		{name: "unknown field", in: "memory=8192,cpus=4,disk=20", wantErr: true},
		{name: "garbage", in: "not-a-profile", wantErr: true},
		{name: "non-numeric memory", in: "memory=lots,cpus=4", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseProfile(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()
	p := Profile{MemoryMB: 2048, CPUs: 2}
	got, err := ParseProfile(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
