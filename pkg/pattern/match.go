package pattern

import (
	"strings"

	"github.com/arthur-debert/treemv/pkg/paths"
	"github.com/arthur-debert/treemv/pkg/types"
)

// Captures holds what a glob consumed while matching an owner path
type Captures struct {
	// Stars is the text matched by each "*", in pattern order
	Stars []string
	// Choices is the alternative taken at each "{...}", outermost first
	Choices []string
}

// Hit is one matched snapshot entry
type Hit struct {
	// Path is the snapshot entry
	Path string
	// Owner is the path the specification matched: Path itself, or a
	// directory above it that carries Path along
	Owner string
	// OwnerIsDir is set when Owner is a directory (listed or implied)
	OwnerIsDir bool
	// Entry is the snapshot entry at Path
	Entry types.Entry
	// Captures is what the glob consumed while matching Owner
	Captures Captures
}

// Suffix returns the part of Path below Owner, including the leading separator
func (m Hit) Suffix() string {
	return m.Path[len(m.Owner):]
}

// Result partitions a snapshot into matched and unmatched entries
type Result struct {
	Matched   []Hit
	Unmatched []types.Entry
}

// MatchedPaths returns the matched entry paths in match order
func (r *Result) MatchedPaths() []string {
	out := make([]string, len(r.Matched))
	for i, m := range r.Matched {
		out[i] = m.Path
	}
	return out
}

// UnmatchedPaths returns the unmatched entry paths in snapshot order
func (r *Result) UnmatchedPaths() []string {
	out := make([]string, len(r.Unmatched))
	for i, e := range r.Unmatched {
		out[i] = e.Path
	}
	return out
}

// candidate is a path the specification can match: a listed entry or an
// implied ancestor directory
type candidate struct {
	path  string
	isDir bool
}

type owner struct {
	path     string
	isDir    bool
	captures Captures
}

// Match partitions snapshot by spec. The result is a pure function of its
// inputs: matched entries are grouped by owner in first-seen order.
func Match(snapshot *types.Snapshot, spec *Spec) *Result {
	entries := snapshot.Entries()
	cands := candidates(entries)

	var owners []owner
	switch spec.Kind {
	case KindAll:
		for _, c := range cands {
			owners = append(owners, owner{path: c.path, isDir: c.isDir})
		}
	case KindLiteral, KindPrefix:
		for _, c := range cands {
			if c.path != spec.Path || (spec.Kind == KindPrefix && !c.isDir) {
				continue
			}
			owners = append(owners, owner{path: c.path, isDir: c.isDir})
		}
		if spec.Kind == KindPrefix && spec.Path == "" {
			// The root prefix owns every top-level entry.
			for _, c := range cands {
				if !strings.Contains(c.path, paths.Separator) {
					owners = append(owners, owner{path: c.path, isDir: c.isDir})
				}
			}
		}
	case KindGlob:
		seen := make(map[string]bool)
		for _, conc := range spec.Expand() {
			for _, c := range cands {
				if seen[c.path] || (spec.DirOnly && !c.isDir) {
					continue
				}
				stars, ok := conc.match(c.path)
				if !ok {
					continue
				}
				seen[c.path] = true
				owners = append(owners, owner{
					path:     c.path,
					isDir:    c.isDir,
					captures: Captures{Stars: stars, Choices: conc.Choices},
				})
			}
		}
	}

	return resolveOwnership(entries, owners)
}

// MatchPaths is Match reduced to the matched and unmatched path lists
func MatchPaths(snapshot *types.Snapshot, spec *Spec) (matched, unmatched []string) {
	r := Match(snapshot, spec)
	return r.MatchedPaths(), r.UnmatchedPaths()
}

// candidates lists implied ancestor directories ahead of the entries below them
func candidates(entries []types.Entry) []candidate {
	out := make([]candidate, 0, len(entries))
	index := make(map[string]int, len(entries))

	add := func(p string, isDir bool) {
		if i, ok := index[p]; ok {
			out[i].isDir = out[i].isDir || isDir
			return
		}
		index[p] = len(out)
		out = append(out, candidate{path: p, isDir: isDir})
	}

	for _, e := range entries {
		for _, a := range paths.Ancestors(e.Path) {
			add(a, true)
		}
		add(e.Path, e.IsDir)
	}
	return out
}

// resolveOwnership assigns every entry to the shallowest owner at or above
// it and flattens the groups in owner order.
func resolveOwnership(entries []types.Entry, owners []owner) *Result {
	byPath := make(map[string]int, len(owners))
	for i, o := range owners {
		if _, ok := byPath[o.path]; !ok {
			byPath[o.path] = i
		}
	}

	groups := make([][]types.Entry, len(owners))
	res := &Result{}
	for _, e := range entries {
		idx := -1
		for _, a := range append(paths.Ancestors(e.Path), e.Path) {
			if i, ok := byPath[a]; ok {
				idx = i
				break
			}
		}
		if idx < 0 {
			res.Unmatched = append(res.Unmatched, e)
			continue
		}
		groups[idx] = append(groups[idx], e)
	}

	for i, o := range owners {
		for _, e := range groups[i] {
			res.Matched = append(res.Matched, Hit{
				Path:       e.Path,
				Owner:      o.path,
				OwnerIsDir: o.isDir,
				Entry:      e,
				Captures:   o.captures,
			})
		}
	}
	return res
}

// match compares p segment by segment and returns the star captures
func (c Concrete) match(p string) ([]string, bool) {
	segs := strings.Split(p, paths.Separator)
	if len(segs) != len(c.Segments) {
		return nil, false
	}

	var caps []string
	for i, seg := range segs {
		var ok bool
		caps, ok = matchTokens(c.Segments[i], seg, caps)
		if !ok {
			return nil, false
		}
	}
	return caps, true
}

// matchTokens matches one segment; stars take the shortest run that lets
// the rest of the segment match.
func matchTokens(toks []token, s string, caps []string) ([]string, bool) {
	if len(toks) == 0 {
		return caps, s == ""
	}

	t := toks[0]
	if !t.star {
		if !strings.HasPrefix(s, t.lit) {
			return nil, false
		}
		return matchTokens(toks[1:], s[len(t.lit):], caps)
	}

	for i := 0; i <= len(s); i++ {
		next := append(caps[:len(caps):len(caps)], s[:i])
		if out, ok := matchTokens(toks[1:], s[i:], next); ok {
			return out, true
		}
	}
	return nil, false
}
