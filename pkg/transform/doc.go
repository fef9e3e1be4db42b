// Package transform drives build passes over tree snapshots.
//
// A pass parses the source and destination specifications, partitions the
// snapshot with the pattern matcher, rewrites every matched entry under the
// relocation policy chosen for the pair, and merges the result with the
// untouched entries. The resulting layout is handed to an optional Realizer
// and remembered per (snapshot fingerprint, source, destination) so an
// identical pass is answered from the cache.
//
// A Driver is not safe for concurrent use; passes on one Driver must be
// serialized by the caller.
package transform
