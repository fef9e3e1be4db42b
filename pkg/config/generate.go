package config

import (
	"strings"

	"github.com/arthur-debert/treemv/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// starterConfig is the example rendered by Generate
var starterConfig = Config{
	Input:  ".",
	Output: "dist",
	Moves: []Move{
		{From: "node_modules/", To: "vendor/"},
		{From: "src/*/*.{css,js}", To: "assets/"},
	},
}

// Generate renders a starter .treemv.toml with every value commented out
func Generate() (string, error) {
	out, err := toml.Marshal(starterConfig)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render config")
	}
	header := "# treemv configuration. Uncomment and edit the values you need.\n\n"
	return header + commentOutConfigValues(string(out)), nil
}

// commentOutConfigValues comments out every assignment and array-table
// header, keeping comments, blank lines and plain table headers.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[["):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
