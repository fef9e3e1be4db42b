// Package types defines the data passed between the stages of a build
// pass: the input Snapshot and its Entries, the Relocation mapping, and
// the output Layout.
package types
