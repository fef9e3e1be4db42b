// Package paths provides slash-path handling for treemv.
//
// Every path that flows through the engine is root-relative, slash
// separated and carries no trailing separator. Directory-ness is tracked
// separately (see types.Entry). This package owns the helpers that keep
// that invariant:
//
//   - Normalize turns user or producer input into the canonical form
//   - Escapes detects paths that would leave the root they are relative to
//   - Join, Ancestors, IsUnder and Base operate on canonical paths
//
// # State directory
//
// Log files live under the XDG state directory:
//
//   - TREEMV_STATE_DIR overrides the location entirely
//   - otherwise $XDG_STATE_HOME/treemv is used
package paths
