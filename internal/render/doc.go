// Package render assembles the output line sequence for one input line: a
// summary header (icon, timestamp, level, logger, message) followed by
// indented detail lines for promoted keys, residual fields, and any
// exception block.
//
// Output is styling-as-data: every line is a sequence of (style token, text)
// spans, and sinks in the console package decide what a token looks like.
// Rendering is a pure function of the input line and the immutable run
// configuration; malformed input degrades to a raw passthrough line rather
// than an error.
package render
