package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Relocate parts of a file tree into a new output tree"
	MsgVersionShort   = "Print version information"
	MsgVersionLong    = "Print detailed version information including commit hash and build date"
	MsgRunShort       = "Build the output tree"
	MsgPlanShort      = "Print the output layout without writing it"
	MsgGenconfigShort = "Print a starter .treemv.toml"

	// Status messages
	MsgDryRunNotice   = "DRY RUN MODE - No changes were made"
	MsgRealizedFormat = "Wrote %d entries (%d moved) to %s\n"
	MsgMovedMarker    = "←"
)

// Long descriptions
const (
	MsgRootLong = `treemv builds an output tree from an input tree by relocating the
entries selected by a source specification to a destination.

A specification is a literal path, a directory prefix ending in "/",
or a glob using "*" and "{a,b}" alternation. Moves come from the
command line or from the "moves" list of .treemv.toml.

See "treemv help topics" for the pattern syntax and configuration.`

	MsgRunLong = `Run applies the moves to the input tree and writes the result to the
output directory, replacing its contents.

With no arguments the moves of the config file are applied in order.
With one argument the whole tree moves into it; with two the first
selects what moves and the second is the destination.`

	MsgPlanLong = `Plan computes the output layout exactly as run would and prints it
without touching the output directory.`

	MsgRunExample = `  # Move node_modules under toy_modules, keeping its name
  treemv run node_modules toy_modules

  # Move the contents of node_modules into toy_modules
  treemv run node_modules/ toy_modules/

  # Flatten matching files into one directory
  treemv run 'node_modules/*/*.{css,js}' assets/`

	MsgPlanExample = `  # Show the layout as JSON
  treemv plan node_modules/ toy_modules/ --format json`
)
