// Package testutil provides helpers for building input trees in tests and
// inspecting what a pass wrote to its output root.
package testutil
