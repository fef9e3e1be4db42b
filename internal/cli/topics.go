package cli

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/treemv/pkg/cobrax/topics"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// installTopics adds "help <topic>" pages. Markdown is rendered only for
// a color-capable terminal.
func installTopics(root *cobra.Command) error {
	source, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}

	opts := topics.Options{Extensions: []string{".md"}}
	if isTerminal(os.Stdout) && !termenv.EnvNoColor() {
		opts.Renderer = topics.NewGlamourRenderer()
	}

	m, err := topics.New(source, opts)
	if err != nil {
		return err
	}
	m.Install(root)
	return nil
}
