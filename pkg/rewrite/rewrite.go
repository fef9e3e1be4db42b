package rewrite

import (
	"strings"

	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/paths"
	"github.com/arthur-debert/treemv/pkg/pattern"
	"github.com/arthur-debert/treemv/pkg/types"
)

// Rewriter computes destination paths under one policy
type Rewriter struct {
	Policy Policy
	Source *pattern.Spec
	Dest   *pattern.Spec
}

// New creates a rewriter for a policy chosen by SelectPolicy
func New(policy Policy, src, dst *pattern.Spec) *Rewriter {
	return &Rewriter{Policy: policy, Source: src, Dest: dst}
}

// Rewrite returns the destination of a matched entry: the owner is
// rewritten by the policy and the entry's suffix below the owner is kept.
func (r *Rewriter) Rewrite(m pattern.Hit) (string, error) {
	head, err := r.rewriteOwner(m)
	if err != nil {
		return "", err
	}

	out, _ := paths.Normalize(paths.Join(head, strings.TrimPrefix(m.Suffix(), paths.Separator)))
	switch {
	case out == "":
		return "", errors.PathError(m.Path, out, "destination is empty").
			WithDetail("spec", r.Dest.Raw)
	case paths.Escapes(out):
		return "", errors.PathError(m.Path, out, "destination leaves the output root").
			WithDetail("spec", r.Dest.Raw)
	}
	return out, nil
}

func (r *Rewriter) rewriteOwner(m pattern.Hit) (string, error) {
	switch r.Policy {
	case WholeMove:
		return paths.Join(r.Dest.Path, m.Owner), nil

	case PrefixSubstitute:
		rel := m.Owner
		if prefix := r.Source.Path; prefix != "" {
			// The prefix directory itself collapses onto the destination.
			rel = strings.TrimPrefix(strings.TrimPrefix(m.Owner, prefix), paths.Separator)
		}
		return paths.Join(r.Dest.Path, rel), nil

	case FlattenCapture:
		return paths.Join(r.Dest.Path, paths.Base(m.Owner)), nil

	case ExactRename:
		return r.Dest.Path, nil

	case CaptureSubstitute:
		return r.substitute(m)
	}

	return "", errors.Newf(errors.ErrInternal, "unknown relocation policy %d", r.Policy)
}

// substitute renders the destination glob with the source captures, in order
func (r *Rewriter) substitute(m pattern.Hit) (string, error) {
	var b strings.Builder
	stars, choices := m.Captures.Stars, m.Captures.Choices

	for _, n := range r.Dest.Glob {
		switch n := n.(type) {
		case pattern.Literal:
			b.WriteString(string(n))
		case pattern.Star:
			if len(stars) == 0 {
				return "", errors.PatternError(r.Dest.Raw, "more '*' than source %q captures for %q", r.Source.Raw, m.Owner).
					WithDetail("source", m.Owner)
			}
			b.WriteString(stars[0])
			stars = stars[1:]
		case pattern.Alternation:
			if len(choices) == 0 {
				return "", errors.PatternError(r.Dest.Raw, "more '{...}' than source %q captures for %q", r.Source.Raw, m.Owner).
					WithDetail("source", m.Owner)
			}
			b.WriteString(choices[0])
			choices = choices[1:]
		}
	}
	return b.String(), nil
}

// Rewrite computes the destination of one matched path from the raw
// specifications. The policy is derived as a build pass would derive it
// for a snapshot holding only matchedPath.
func Rewrite(matchedPath, sourceSpec, destSpec string) (string, error) {
	src, err := pattern.Parse(sourceSpec)
	if err != nil {
		return "", err
	}
	dst, err := pattern.ParseDest(destSpec)
	if err != nil {
		return "", err
	}

	snap, err := types.NewSnapshot(matchedPath)
	if err != nil {
		return "", err
	}
	res := pattern.Match(snap, src)
	if len(res.Matched) == 0 {
		return "", errors.NotFoundError(sourceSpec).WithDetail("path", matchedPath)
	}
	m := res.Matched[0]

	policy, err := SelectPolicy(src, dst, m.OwnerIsDir)
	if err != nil {
		return "", err
	}
	return New(policy, src, dst).Rewrite(m)
}
