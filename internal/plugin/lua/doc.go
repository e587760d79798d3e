// Package lua runs markstyle scripts on gopher-lua.
//
// A State is a sandboxed interpreter: only the base, table, string and
// math libraries are opened, file loading functions are removed, and
// require only resolves the safe built-ins and modules preloaded by Go.
// print writes to the configured output instead of stdout.
//
// The markstyle module binds an engine and a transformer:
//
//	local ms = require("markstyle")
//	ms.select(0, 4, 0, 9)
//	local report = ms.toggle("bold")
//	print(report.selections[1].action)
//
// Lines and columns are zero-based and columns count UTF-16 code units,
// the same positions the engine uses.
package lua
