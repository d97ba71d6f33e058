// Package filter decides which rendered records reach the sink: include and
// exclude regex patterns matched against the plain-text rendering, glob
// field selectors matched against extracted fields, and grep-style context
// buffering around matches. All criteria AND together; raw passthrough
// lines face only the regex patterns, never the selectors.
package filter
