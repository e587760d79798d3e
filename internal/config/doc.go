// Package config loads markstyle settings.
//
// Settings are layered, later layers overriding earlier ones:
//
//	built-in defaults
//	config file (TOML or YAML, picked by extension)
//	MARKSTYLE_* environment variables
//
// A file looks like:
//
//	[logging]
//	level = "debug"
//	file = "~/.local/state/markstyle/markstyle.log"
//
//	[editor]
//	toggle = true
//	lineEnding = "lf"
//
//	[styles.kbd]
//	prefix = "<kbd>"
//	suffix = "</kbd>"
//
//	[patterns]
//	wordGlyphs = ["(", ")"]
//
// Styles named in the file replace the built-in rule of the same name or
// are added after the built-in rules. Empty pattern lists keep the
// built-in tables.
package config
