package testutil

import (
	"path"
	"testing"

	"github.com/arthur-debert/treemv/pkg/filesystem"
)

// FileTree represents a directory structure for testing.
// A string value is a file's content, a nested FileTree is a directory.
type FileTree map[string]interface{}

// CreateFileTree recursively creates tree below basePath on fs
func CreateFileTree(t *testing.T, fs filesystem.FS, basePath string, tree FileTree) {
	t.Helper()

	if err := fs.MkdirAll(basePath, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", basePath, err)
	}

	for name, content := range tree {
		fullPath := path.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(path.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", path.Dir(fullPath), err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			CreateFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
