package pattern

import (
	"strings"

	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/paths"
)

// Kind is the shape of a parsed specification
type Kind int

const (
	// KindAll matches every entry (empty specification)
	KindAll Kind = iota
	// KindLiteral is an exact path
	KindLiteral
	// KindPrefix is a directory path ending in a separator
	KindPrefix
	// KindGlob contains "*" and/or "{...}"
	KindGlob
)

func (k Kind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindLiteral:
		return "literal"
	case KindPrefix:
		return "prefix"
	case KindGlob:
		return "glob"
	default:
		return "unknown"
	}
}

// Spec is a parsed source or destination specification
type Spec struct {
	// Raw is the specification as given
	Raw string
	// Kind is the specification shape
	Kind Kind
	// Path is the canonical path for literal and prefix specifications.
	// The root is "".
	Path string
	// DirOnly is set when the specification ends in a separator
	DirOnly bool
	// Glob is the parsed AST of a glob specification
	Glob Sequence
}

// MaxExpansions bounds the number of concrete patterns one glob may expand to
const MaxExpansions = 1024

// Parse parses a source specification.
// "." and "./" denote the root directory. Paths leaving the tree root are
// a PATTERN error.
func Parse(raw string) (*Spec, error) {
	return parse(raw, false)
}

// ParseDest parses a destination specification. Unlike Parse it accepts
// absolute paths and ".." segments: whether a destination leaves the
// output root is only known once it is rewritten for a matched entry,
// which reports it as a PATH error.
func ParseDest(raw string) (*Spec, error) {
	return parse(raw, true)
}

func parse(raw string, dest bool) (*Spec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &Spec{Raw: raw, Kind: KindAll}, nil
	}

	if !hasMeta(trimmed) {
		p, dir := paths.Normalize(trimmed)
		if !dest && paths.Escapes(p) {
			return nil, errors.PatternError(raw, "path leaves the tree root")
		}
		kind := KindLiteral
		if dir || p == "" {
			kind = KindPrefix
		}
		return &Spec{Raw: raw, Kind: kind, Path: p, DirOnly: kind == KindPrefix}, nil
	}

	src := strings.ReplaceAll(trimmed, `\`, paths.Separator)
	for strings.HasPrefix(src, "./") {
		src = src[2:]
	}
	abs := strings.HasPrefix(src, paths.Separator)
	if abs && !dest {
		return nil, errors.PatternError(raw, "path leaves the tree root")
	}
	dirOnly := strings.HasSuffix(src, paths.Separator)
	src = strings.TrimRight(src, paths.Separator)

	for i, seg := range strings.Split(src, paths.Separator) {
		switch {
		case seg == "" && abs && i == 0:
		case seg == "":
			return nil, errors.PatternError(raw, "empty path segment")
		case (seg == "." || seg == "..") && !dest:
			return nil, errors.PatternError(raw, "segment %q is not allowed in a glob", seg)
		}
	}

	seq, err := parseSequence(src)
	if err != nil {
		if te, ok := err.(*errors.TreemvError); ok {
			te.WithDetail("spec", raw)
		}
		return nil, err
	}
	if n := expansions(seq); n > MaxExpansions {
		return nil, errors.PatternError(raw, "expands to more than %d patterns", MaxExpansions).
			WithDetail("limit", MaxExpansions)
	}

	return &Spec{Raw: raw, Kind: KindGlob, DirOnly: dirOnly, Glob: seq}, nil
}

// MustParse is Parse for specifications known to be valid
func MustParse(raw string) *Spec {
	s, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// IsGlob reports whether the specification contains glob syntax
func (s *Spec) IsGlob() bool {
	return s.Kind == KindGlob
}

func (s *Spec) String() string {
	return s.Raw
}
