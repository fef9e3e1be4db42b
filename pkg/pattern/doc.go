// Package pattern turns path specifications into matchers over tree snapshots.
//
// A specification is one of:
//
//   - empty: matches every entry (KindAll)
//   - a literal path: matches that entry, or the directory at that path
//     together with everything below it (KindLiteral)
//   - a path ending in "/": matches the directory and everything below it
//     (KindPrefix)
//   - a glob: contains "*" (any run of non-separator bytes within one
//     segment) and/or "{a,b}" alternation (KindGlob)
//
// Globs are parsed into a small AST (Sequence of Literal, Star and
// Alternation nodes). Alternations are expanded up front into the
// cross-product of concrete patterns, which are then compared segment by
// segment against full paths. Matching is anchored and case-sensitive.
//
// Match resolves directory ownership once: a matched directory owns every
// entry below it, so the result is a flat partition of the snapshot into
// matched and unmatched paths.
package pattern
