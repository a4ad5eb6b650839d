package controller

import (
	"context"

	"github.com/goliatone/go-formstate/pkg/lifecycle"
)

// Subscribe registers an observer and returns a channel of state
// replacements. The current state is delivered first so subscribers never
// start blind. The channel closes when ctx is cancelled; publishes never
// block, so a full buffer drops intermediate states rather than stalling the
// controller.
func (c *Controller[S, F]) Subscribe(ctx context.Context) <-chan lifecycle.State[S, F] {
	ch := make(chan lifecycle.State[S, F], c.buffer)

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = ch
	ch <- c.current
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
		// No publisher can hold the channel once it left the map.
		close(ch)
	}()

	return ch
}
