package transform

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/cespare/xxhash/v2"
)

// Fingerprint computes the xxHash64 of a snapshot's structure: paths in
// order, directory flags and origins. File contents are not read.
func Fingerprint(snapshot *types.Snapshot) uint64 {
	h := xxhash.New()
	for _, e := range snapshot.Entries() {
		_, _ = h.WriteString(e.Path)
		if e.IsDir {
			_, _ = h.Write([]byte{0, 'd'})
		} else {
			_, _ = h.Write([]byte{0, 'f'})
		}
		_, _ = h.WriteString(e.Origin)
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// FingerprintHex is Fingerprint rendered as 16 hex digits.
func FingerprintHex(snapshot *types.Snapshot) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], Fingerprint(snapshot))
	return hex.EncodeToString(buf[:])
}
