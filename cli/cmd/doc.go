// Package cmd implements the tpp subcommands.
//
//   - [Render] expands a template with the define tree (the default command).
//   - [Dump] prints the define tree as JSON, YAML or a tree.
//   - [Init] writes the configuration file from current flag values.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path of
	// the YAML configuration file, and the name of the top-level mapping in
	// that file holding flag values.
	ConfigIdentifier = "config"

	// PatternIdentifier is the kong variable identifier containing the
	// default search path template pattern.
	PatternIdentifier = "renderPattern"

	// PathListSepIdentifier is the kong variable identifier containing the
	// OS path list separator.
	PathListSepIdentifier = "pathListSep"
)
