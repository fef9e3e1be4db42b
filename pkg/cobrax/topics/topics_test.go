// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: in-memory fs.FS
// PURPOSE: Test help topic discovery and the help command

package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source() fstest.MapFS {
	return fstest.MapFS{
		"patterns.md":      {Data: []byte("# Patterns\n")},
		"sub/policies.txt": {Data: []byte("policies\n")},
		"notes.json":       {Data: []byte("{}")},
	}
}

func TestNew(t *testing.T) {
	m, err := New(source(), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"patterns", "policies"}, m.Names())

	topic, ok := m.Get("patterns")
	require.True(t, ok)
	assert.Equal(t, "# Patterns\n", topic.Content)

	_, ok = m.Get("--policies")
	assert.True(t, ok, "flag-style names resolve")

	_, ok = m.Get("notes")
	assert.False(t, ok, "unsupported extensions are skipped")
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	return format + ":" + content
}

func TestManager_Render(t *testing.T) {
	m, err := New(source(), Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	topic, _ := m.Get("patterns")
	assert.Equal(t, ".md:# Patterns\n", m.Render(topic))
}

func TestGlamourRenderer_NonMarkdown(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain", r.Render("plain", ".txt"))
}

func TestInstall(t *testing.T) {
	m, err := New(source(), Options{})
	require.NoError(t, err)

	root := &cobra.Command{Use: "treemv"}
	root.AddCommand(&cobra.Command{Use: "run", Short: "Run moves", Run: func(*cobra.Command, []string) {}})
	m.Install(root)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"topic", []string{"help", "patterns"}, "# Patterns"},
		{"list", []string{"help", "topics"}, "  policies"},
		{"unknown", []string{"help", "nope"}, `Unknown help topic "nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}
