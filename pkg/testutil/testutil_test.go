package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/treemv/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndList(t *testing.T) {
	root := t.TempDir()
	CreateFiles(t, root, map[string]string{
		"node_modules/mocha/mocha.js": "js",
		"a.txt":                       "a",
	})

	assert.Equal(t, []string{"a.txt", "node_modules/mocha/mocha.js"}, ListFiles(t, root))
	assert.Equal(t, "js", ReadFile(t, root, "node_modules/mocha/mocha.js"))
	AssertNoFile(t, filepath.Join(root, "missing"))
}

func TestCreateFileTree(t *testing.T) {
	fs := filesystem.NewMemory()
	CreateFileTree(t, fs, "/root", FileTree{
		"empty": FileTree{},
		"node_modules": FileTree{
			"foo": FileTree{"foo.css": "foo"},
		},
	})

	content, err := fs.ReadFile("/root/node_modules/foo/foo.css")
	require.NoError(t, err)
	assert.Equal(t, "foo", string(content))

	info, err := fs.Stat("/root/empty")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
