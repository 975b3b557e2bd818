package buildinfo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ritualhq/ritual/internal/buildinfo"
)

// TestDefaultValues verifies that buildinfo package-level variables have their
// expected default values when not overridden by ldflags at build time.
func TestDefaultValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "Version defaults to dev",
			got:  buildinfo.Version,
			want: "dev",
		},
		{
			name: "Commit defaults to unknown",
			got:  buildinfo.Commit,
			want: "unknown",
		},
		{
			name: "Date defaults to unknown",
			got:  buildinfo.Date,
			want: "unknown",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

// TestGetInfo_DefaultValues verifies that GetInfo returns an Info struct
// populated from the package-level variables.
func TestGetInfo_DefaultValues(t *testing.T) {
	t.Parallel()

	info := buildinfo.GetInfo()

	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, "unknown", info.Date)
}

// TestString verifies the human-readable format includes the tool name and
// all three build fields.
func TestString(t *testing.T) {
	t.Parallel()

	info := buildinfo.Info{Version: "1.0.0", Commit: "a1b2c3d", Date: "2026-02-17T10:00:00Z"}

	assert.Equal(t, "ritual v1.0.0 (commit: a1b2c3d, built: 2026-02-17T10:00:00Z)", info.String())
}
