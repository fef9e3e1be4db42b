package pattern

import "strings"

// token is one element of a concrete segment: literal text or a star
type token struct {
	lit  string
	star bool
}

// Concrete is one alternation-free pattern produced by brace expansion
type Concrete struct {
	// Segments holds the tokens of each path segment
	Segments [][]token
	// Choices records the alternative taken at each alternation, outermost first
	Choices []string
}

// String renders the concrete pattern back to glob syntax
func (c Concrete) String() string {
	var b strings.Builder
	for i, seg := range c.Segments {
		if i > 0 {
			b.WriteByte('/')
		}
		for _, t := range seg {
			if t.star {
				b.WriteByte('*')
			} else {
				b.WriteString(t.lit)
			}
		}
	}
	return b.String()
}

// Stars returns the number of wildcards in the concrete pattern
func (c Concrete) Stars() int {
	n := 0
	for _, seg := range c.Segments {
		for _, t := range seg {
			if t.star {
				n++
			}
		}
	}
	return n
}

// partial is a flat token run under construction
type partial struct {
	toks    []token
	choices []string
}

// Expand returns the cross-product of all alternations, in declaration order.
func (s *Spec) Expand() []Concrete {
	var seq Sequence
	switch s.Kind {
	case KindGlob:
		seq = s.Glob
	case KindAll:
		return nil
	default:
		seq = Sequence{Literal(s.Path)}
	}

	parts := expandSequence(seq)
	out := make([]Concrete, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		c := Concrete{Segments: splitSegments(p.toks), Choices: p.choices}
		key := c.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// expansions counts the concrete patterns seq expands to, saturating just
// above MaxExpansions
func expansions(seq Sequence) int {
	n := 1
	for _, node := range seq {
		alt, ok := node.(Alternation)
		if !ok {
			continue
		}
		sum := 0
		for _, a := range alt.Alts {
			sum += expansions(a)
			if sum > MaxExpansions {
				return MaxExpansions + 1
			}
		}
		n *= sum
		if n > MaxExpansions {
			return MaxExpansions + 1
		}
	}
	return n
}

func expandSequence(seq Sequence) []partial {
	parts := []partial{{}}
	for _, n := range seq {
		switch n := n.(type) {
		case Literal:
			for i := range parts {
				parts[i].toks = appendToken(parts[i].toks, token{lit: string(n)})
			}
		case Star:
			for i := range parts {
				parts[i].toks = appendToken(parts[i].toks, token{star: true})
			}
		case Alternation:
			next := make([]partial, 0, len(parts)*len(n.Alts))
			for _, p := range parts {
				for i, alt := range n.Alts {
					for _, sub := range expandSequence(alt) {
						toks := append(append([]token(nil), p.toks...), sub.toks...)
						choices := append(append([]string(nil), p.choices...), n.Raw[i])
						choices = append(choices, sub.choices...)
						next = append(next, partial{toks: mergeLiterals(toks), choices: choices})
					}
				}
			}
			parts = next
		}
	}
	return parts
}

func appendToken(toks []token, t token) []token {
	toks = append(append([]token(nil), toks...), t)
	return mergeLiterals(toks)
}

// mergeLiterals joins adjacent literal tokens and adjacent stars
func mergeLiterals(toks []token) []token {
	out := toks[:0:0]
	for _, t := range toks {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if !t.star && !last.star {
				last.lit += t.lit
				continue
			}
			if t.star && last.star {
				continue
			}
		}
		if !t.star && t.lit == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// splitSegments cuts a flat token run at separators
func splitSegments(toks []token) [][]token {
	segs := [][]token{nil}
	for _, t := range toks {
		if t.star {
			segs[len(segs)-1] = append(segs[len(segs)-1], t)
			continue
		}
		parts := strings.Split(t.lit, "/")
		for i, part := range parts {
			if i > 0 {
				segs = append(segs, nil)
			}
			if part != "" {
				segs[len(segs)-1] = append(segs[len(segs)-1], token{lit: part})
			}
		}
	}

	// "x/{a,}/b" expands to "x//b", which names "x/b".
	out := segs[:0]
	for _, seg := range segs {
		if len(seg) > 0 {
			out = append(out, seg)
		}
	}
	return out
}
