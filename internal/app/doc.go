// Package app is the composition root for the plume CLI.
//
// # Overview
//
// Run wires configuration, theme, renderer, filters, statistics, and the
// output sink together, then drives lines from stdin, file arguments, or the
// follow-mode tailer through the pipeline. It owns every policy decision the
// render core deliberately avoids: where input comes from, when output is
// flushed, and which sink applies styling.
//
// # Data Flow
//
//	stdin / files / tailer
//	        │
//	        ▼
//	renderer.Render(raw)      parse, extract, classify, assemble spans
//	        │
//	        ├─> stats.Observe  (optional, --stats)
//	        ▼
//	filter.Match              include/exclude + field selectors
//	        │
//	        ▼
//	context.Observe           -B/-A/-C buffering around matches
//	        │
//	        ▼
//	highlight.Apply           -H pattern retagging (optional)
//	        │
//	        ▼
//	sink.Emit                 ANSI or plain, per --color and terminal
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable config or theme files,
// invalid filter or highlight patterns, unopenable input files. Per-line
// conditions are never fatal; malformed lines pass through raw. Output is flushed
// after every emitted input line so interactive tailing does not lag behind
// a buffered writer.
package app
