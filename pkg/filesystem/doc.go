// Package filesystem provides the afero-backed filesystem treemv reads
// input trees from and prepares output roots with.
//
// Production code uses NewOS; tests use NewMemory so tree walks run
// without touching disk.
package filesystem
