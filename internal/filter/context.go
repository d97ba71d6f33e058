package filter

import "github.com/plumelog/plume/internal/render"

// Context buffers rendered entries around filter matches, grep-style: up to
// `before` suppressed entries replay when a match arrives, and `after`
// entries following a match pass through.
type Context struct {
	before    int
	after     int
	ring      [][]render.Line
	afterLeft int
}

func NewContext(before, after int) *Context {
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}
	return &Context{before: before, after: after}
}

// Observe feeds one rendered entry and its match decision. It returns any
// buffered leading-context entries to emit first, and whether the entry
// itself should be emitted.
func (c *Context) Observe(entry []render.Line, match bool) (flush [][]render.Line, emit bool) {
	if match {
		flush = c.ring
		c.ring = nil
		c.afterLeft = c.after
		return flush, true
	}
	if c.afterLeft > 0 {
		c.afterLeft--
		return nil, true
	}
	if c.before > 0 {
		c.ring = append(c.ring, entry)
		if len(c.ring) > c.before {
			c.ring = c.ring[1:]
		}
	}
	return nil, false
}
