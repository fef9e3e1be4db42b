// Package config loads treemv settings.
//
// Values are layered, later sources overriding earlier ones: embedded
// defaults, the project config file (.treemv.toml or .treemv.yaml, or an
// explicit path), TREEMV_* environment variables, then command-line flags.
package config
