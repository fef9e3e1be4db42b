package rewrite

import (
	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/pattern"
)

// Policy is the relocation policy of one build pass
type Policy int

const (
	// WholeMove re-roots the matched path, directory name included, under the destination
	WholeMove Policy = iota + 1
	// PrefixSubstitute replaces the source prefix with the destination directory
	PrefixSubstitute
	// FlattenCapture drops intermediate directories and keeps the basename
	FlattenCapture
	// ExactRename moves one file to the destination path verbatim
	ExactRename
	// CaptureSubstitute fills the destination's "*" and "{...}" with what the source glob captured
	CaptureSubstitute
)

func (p Policy) String() string {
	switch p {
	case WholeMove:
		return "whole-move"
	case PrefixSubstitute:
		return "prefix-substitute"
	case FlattenCapture:
		return "flatten-capture"
	case ExactRename:
		return "exact-rename"
	case CaptureSubstitute:
		return "capture-substitute"
	default:
		return "unknown"
	}
}

// SelectPolicy picks the policy from the shapes of the two specifications.
// srcIsDir tells whether a literal source names a directory in the snapshot.
func SelectPolicy(src, dst *pattern.Spec, srcIsDir bool) (Policy, error) {
	if dst.Kind == pattern.KindAll {
		return 0, errors.PatternError(dst.Raw, "destination is required")
	}

	noGlob := func(p Policy) (Policy, error) {
		if dst.IsGlob() {
			return 0, errors.PatternError(dst.Raw, "glob destination needs a glob source, got %s source %q", src.Kind, src.Raw).
				WithDetail("source", src.Raw)
		}
		return p, nil
	}

	switch src.Kind {
	case pattern.KindAll:
		return noGlob(WholeMove)
	case pattern.KindPrefix:
		return noGlob(PrefixSubstitute)
	case pattern.KindGlob:
		if dst.IsGlob() {
			return CaptureSubstitute, nil
		}
		return FlattenCapture, nil
	case pattern.KindLiteral:
		if srcIsDir {
			return noGlob(WholeMove)
		}
		if dst.Kind == pattern.KindPrefix {
			return FlattenCapture, nil
		}
		return noGlob(ExactRename)
	}

	return 0, errors.Newf(errors.ErrInternal, "unknown source kind %s", src.Kind)
}
