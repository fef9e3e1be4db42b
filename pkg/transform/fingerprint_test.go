package transform_test

import (
	"testing"

	"github.com/arthur-debert/treemv/pkg/transform"
	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	base := snapshot(t, "a/b.txt", "c.txt")

	tests := []struct {
		name  string
		other *types.Snapshot
		same  bool
	}{
		{"identical listing", snapshot(t, "a/b.txt", "c.txt"), true},
		{"equivalent spelling", snapshot(t, "./a/b.txt", "c.txt"), true},
		{"reordered", snapshot(t, "c.txt", "a/b.txt"), false},
		{"added entry", snapshot(t, "a/b.txt", "c.txt", "d.txt"), false},
		{"directory flag", snapshot(t, "a/b.txt", "c.txt/"), false},
		{"path boundary", snapshot(t, "a/b.txtc", ".txt"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.same {
				assert.Equal(t, transform.Fingerprint(base), transform.Fingerprint(tt.other))
			} else {
				assert.NotEqual(t, transform.Fingerprint(base), transform.Fingerprint(tt.other))
			}
		})
	}
}

func TestFingerprint_Origin(t *testing.T) {
	a, err := types.NewSnapshotFromEntries([]types.Entry{{Path: "x.txt", Origin: "src/x.txt"}})
	require.NoError(t, err)
	b, err := types.NewSnapshotFromEntries([]types.Entry{{Path: "x.txt", Origin: "lib/x.txt"}})
	require.NoError(t, err)

	assert.NotEqual(t, transform.Fingerprint(a), transform.Fingerprint(b))
	assert.Len(t, transform.FingerprintHex(a), 16)
}
