// Package fresh provides the monotone name-allocator used by
// capture-avoiding substitution at both the type and term level. The
// original implementation keeps one process-wide counter; §5's design note
// asks for it to be scoped per pass instead so tests stay hermetic — each
// pass constructs its own *Counter rather than sharing a package global.
package fresh

import "fmt"

// Counter allocates names of the form "base$N" for a strictly increasing N.
// The zero value is ready to use.
type Counter struct {
	n int
}

// NewCounter returns a counter starting at zero.
func NewCounter() *Counter {
	return &Counter{}
}

// Name returns a fresh name derived from base.
func (c *Counter) Name(base string) string {
	c.n++
	return fmt.Sprintf("%s$%d", base, c.n)
}
