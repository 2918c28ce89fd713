package ecs

// Commands buffers work that must wait until every system of the frame has
// run, such as side effects that should observe the settled frame or
// structural changes to entities the current queries are still iterating.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run once the frame's systems have finished.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs the deferred functions in order and resets the buffer.
func (c *Commands) Flush() {
	for _, fn := range c.defers {
		fn()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
