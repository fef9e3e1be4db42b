package pattern

import (
	"sort"
	"testing"

	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *types.Snapshot {
	t.Helper()
	s, err := types.NewSnapshot(
		"node_modules/foo/foo.css",
		"node_modules/mocha/mocha.css",
		"node_modules/mocha/mocha.js",
		"node_modules/mocha/package.json",
	)
	require.NoError(t, err)
	return s
}

// fixtureWithDirs mirrors a find listing, directories included
func fixtureWithDirs(t *testing.T) *types.Snapshot {
	t.Helper()
	s, err := types.NewSnapshot(
		"node_modules/",
		"node_modules/foo/",
		"node_modules/foo/foo.css",
		"node_modules/mocha/",
		"node_modules/mocha/mocha.css",
		"node_modules/mocha/mocha.js",
		"node_modules/mocha/package.json",
	)
	require.NoError(t, err)
	return s
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name          string
		spec          string
		wantMatched   []string
		wantUnmatched []string
	}{
		{
			name:        "everything",
			spec:        "",
			wantMatched: fixturePaths,
		},
		{
			name:        "literal implicit directory carries descendants",
			spec:        "node_modules",
			wantMatched: fixturePaths,
		},
		{
			name:          "literal file",
			spec:          "node_modules/mocha/mocha.css",
			wantMatched:   []string{"node_modules/mocha/mocha.css"},
			wantUnmatched: []string{"node_modules/foo/foo.css", "node_modules/mocha/mocha.js", "node_modules/mocha/package.json"},
		},
		{
			name:          "directory prefix",
			spec:          "node_modules/mocha/",
			wantMatched:   []string{"node_modules/mocha/mocha.css", "node_modules/mocha/mocha.js", "node_modules/mocha/package.json"},
			wantUnmatched: []string{"node_modules/foo/foo.css"},
		},
		{
			name:          "prefix is not a substring match",
			spec:          "node_modules/moc/",
			wantUnmatched: fixturePaths,
		},
		{
			name:          "brace expansion",
			spec:          "node_modules/mocha/mocha.{css,js}",
			wantMatched:   []string{"node_modules/mocha/mocha.css", "node_modules/mocha/mocha.js"},
			wantUnmatched: []string{"node_modules/foo/foo.css", "node_modules/mocha/package.json"},
		},
		{
			name:          "star and brace expansion",
			spec:          "node_modules/*/*.{css,js}",
			wantMatched:   []string{"node_modules/foo/foo.css", "node_modules/mocha/mocha.css", "node_modules/mocha/mocha.js"},
			wantUnmatched: []string{"node_modules/mocha/package.json"},
		},
		{
			name:          "alternation order decides first-seen order",
			spec:          "node_modules/*/*.{js,css}",
			wantMatched:   []string{"node_modules/mocha/mocha.js", "node_modules/foo/foo.css", "node_modules/mocha/mocha.css"},
			wantUnmatched: []string{"node_modules/mocha/package.json"},
		},
		{
			name:          "glob matching an implied directory carries descendants",
			spec:          "node_modules/m*",
			wantMatched:   []string{"node_modules/mocha/mocha.css", "node_modules/mocha/mocha.js", "node_modules/mocha/package.json"},
			wantUnmatched: []string{"node_modules/foo/foo.css"},
		},
		{
			name:          "anchored: no partial match",
			spec:          "mocha/*.css",
			wantUnmatched: fixturePaths,
		},
		{
			name:          "case sensitive",
			spec:          "node_modules/mocha/MOCHA.css",
			wantUnmatched: fixturePaths,
		},
		{
			name:          "star does not cross separators",
			spec:          "node_modules/*.css",
			wantUnmatched: fixturePaths,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, unmatched := MatchPaths(fixture(t), MustParse(tt.spec))
			assert.Equal(t, tt.wantMatched, nilIfEmpty(matched))
			assert.Equal(t, tt.wantUnmatched, nilIfEmpty(unmatched))
		})
	}
}

var fixturePaths = []string{
	"node_modules/foo/foo.css",
	"node_modules/mocha/mocha.css",
	"node_modules/mocha/mocha.js",
	"node_modules/mocha/package.json",
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestMatch_Owners(t *testing.T) {
	t.Run("literal directory owns descendants", func(t *testing.T) {
		r := Match(fixtureWithDirs(t), MustParse("node_modules/mocha"))
		require.Len(t, r.Matched, 4)
		for _, m := range r.Matched {
			assert.Equal(t, "node_modules/mocha", m.Owner)
			assert.True(t, m.OwnerIsDir)
		}
		assert.Equal(t, "", r.Matched[0].Suffix())
		assert.Equal(t, "/mocha.css", r.Matched[1].Suffix())
	})

	t.Run("shallowest owner wins", func(t *testing.T) {
		r := Match(fixtureWithDirs(t), MustParse("{node_modules/mocha,node_modules}"))
		require.Len(t, r.Matched, 7)
		for _, m := range r.Matched {
			assert.Equal(t, "node_modules", m.Owner, m.Path)
		}
	})

	t.Run("glob captures", func(t *testing.T) {
		r := Match(fixture(t), MustParse("node_modules/*/*.{css,js}"))
		require.Len(t, r.Matched, 3)
		assert.Equal(t, []string{"foo", "foo"}, r.Matched[0].Captures.Stars)
		assert.Equal(t, []string{"css"}, r.Matched[0].Captures.Choices)
		assert.Equal(t, []string{"mocha", "mocha"}, r.Matched[2].Captures.Stars)
		assert.Equal(t, []string{"js"}, r.Matched[2].Captures.Choices)
	})

	t.Run("directory-only glob", func(t *testing.T) {
		r := Match(fixture(t), MustParse("node_modules/*/"))
		require.Len(t, r.Matched, 4)
		assert.Equal(t, "node_modules/foo", r.Matched[0].Owner)
		assert.Equal(t, "node_modules/mocha", r.Matched[1].Owner)
	})
}

func TestMatch_ListedDirectories(t *testing.T) {
	matched, unmatched := MatchPaths(fixtureWithDirs(t), MustParse("node_modules/mocha/"))
	assert.Equal(t, []string{
		"node_modules/mocha",
		"node_modules/mocha/mocha.css",
		"node_modules/mocha/mocha.js",
		"node_modules/mocha/package.json",
	}, matched)
	assert.Equal(t, []string{"node_modules", "node_modules/foo", "node_modules/foo/foo.css"}, unmatched)
}

func TestMatch_RootPrefix(t *testing.T) {
	r := Match(fixture(t), MustParse("./"))
	require.Len(t, r.Matched, 4)
	assert.Equal(t, "node_modules", r.Matched[0].Owner)
	assert.Empty(t, r.Unmatched)
}

func TestMatch_Properties(t *testing.T) {
	specs := []string{
		"",
		"node_modules",
		"node_modules/",
		"node_modules/mocha/mocha.{css,js}",
		"node_modules/*/*.{css,js}",
		"node_modules/{foo,mocha}/",
		"does/not/exist",
	}

	for _, raw := range specs {
		t.Run(raw, func(t *testing.T) {
			snap := fixtureWithDirs(t)
			spec := MustParse(raw)

			m1, u1 := MatchPaths(snap, spec)
			m2, u2 := MatchPaths(snap, spec)
			assert.Equal(t, m1, m2, "matching must be idempotent")
			assert.Equal(t, u1, u2, "matching must be idempotent")

			seen := make(map[string]bool)
			for _, p := range append(append([]string{}, m1...), u1...) {
				assert.False(t, seen[p], "%s appears twice", p)
				seen[p] = true
			}

			union := append(append([]string{}, m1...), u1...)
			sort.Strings(union)
			all := snap.Paths()
			sort.Strings(all)
			assert.Equal(t, all, union, "matched and unmatched must partition the snapshot")
		})
	}
}

func TestMatchTokens(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
		caps    []string
	}{
		{"*.css", "mocha.css", true, []string{"mocha"}},
		{"*.css", ".css", true, []string{""}},
		{"*.css", "mocha.js", false, nil},
		{"*", "", true, []string{""}},
		{"a*b*c", "axxbyyc", true, []string{"xx", "yy"}},
		{"*.*", "a.b.c", true, []string{"a", "b.c"}},
		{"mocha.css", "mocha.css", true, nil},
		{"mocha.css", "mocha.cs", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.input, func(t *testing.T) {
			c := MustParse(tt.pattern).Expand()[0]
			caps, ok := matchTokens(c.Segments[0], tt.input, nil)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.caps, caps)
			}
		})
	}
}
