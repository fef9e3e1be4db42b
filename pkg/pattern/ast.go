package pattern

import (
	"strings"

	"github.com/arthur-debert/treemv/pkg/errors"
)

// Node is one element of a parsed glob
type Node interface {
	node()
}

// Literal is verbatim text, possibly spanning separators
type Literal string

// Star matches zero or more non-separator bytes
type Star struct{}

// Alternation matches exactly one of its alternatives
type Alternation struct {
	// Raw holds each alternative as written
	Raw  []string
	Alts []Sequence
}

// Sequence is an ordered run of nodes
type Sequence []Node

func (Literal) node()     {}
func (Star) node()        {}
func (Alternation) node() {}

// parseSequence parses raw into an AST. Commas outside braces are literal.
func parseSequence(raw string) (Sequence, error) {
	p := &parser{src: raw}
	seq, err := p.sequence(0)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, errors.PatternError(raw, "unexpected %q at offset %d", p.src[p.pos], p.pos).
			WithDetail("offset", p.pos)
	}
	return seq, nil
}

type parser struct {
	src string
	pos int
}

// sequence consumes nodes until the end of input or, inside braces, a ',' or '}'.
func (p *parser) sequence(depth int) (Sequence, error) {
	var seq Sequence
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			seq = append(seq, Literal(lit.String()))
			lit.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '*':
			flush()
			// "**" has no special meaning here; collapse it.
			if n := len(seq); n == 0 || !isStar(seq[n-1]) {
				seq = append(seq, Star{})
			}
			p.pos++
		case c == '{':
			flush()
			alt, err := p.alternation(depth + 1)
			if err != nil {
				return nil, err
			}
			seq = append(seq, alt)
		case c == '}' && depth == 0:
			return nil, errors.PatternError(p.src, "unbalanced '}' at offset %d", p.pos).
				WithDetail("offset", p.pos)
		case (c == ',' || c == '}') && depth > 0:
			flush()
			return seq, nil
		default:
			lit.WriteByte(c)
			p.pos++
		}
	}

	if depth > 0 {
		return nil, errors.PatternError(p.src, "unbalanced '{'").
			WithDetail("offset", len(p.src))
	}
	flush()
	return seq, nil
}

func (p *parser) alternation(depth int) (Alternation, error) {
	open := p.pos
	p.pos++ // '{'

	var alt Alternation
	for {
		start := p.pos
		seq, err := p.sequence(depth)
		if err != nil {
			return Alternation{}, err
		}
		if p.pos >= len(p.src) {
			return Alternation{}, errors.PatternError(p.src, "unbalanced '{' at offset %d", open).
				WithDetail("offset", open)
		}
		alt.Raw = append(alt.Raw, p.src[start:p.pos])
		alt.Alts = append(alt.Alts, seq)

		c := p.src[p.pos]
		p.pos++
		if c == '}' {
			return alt, nil
		}
	}
}

func isStar(n Node) bool {
	_, ok := n.(Star)
	return ok
}

// hasMeta reports whether raw contains glob syntax
func hasMeta(raw string) bool {
	return strings.ContainsAny(raw, "*{}")
}
