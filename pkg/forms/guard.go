package forms

import "sync"

// treeGuard serializes mutations of one attached control tree against the
// package's own async-validation goroutines. Every control in an attached
// tree shares its root's guard; attaching a subtree moves it onto the
// owner's guard, and a detached subtree keeps the guard it last shared.
//
// Listener callbacks are not invoked under the guard: mutations queue them
// and runGuarded delivers the queue after releasing the lock, so a callback
// that mutates the tree re-enters through a fresh acquisition instead of
// deadlocking.
type treeGuard struct {
	mu     sync.Mutex
	queued []func()
}

// runGuarded runs op while holding the control's tree guard, then delivers
// the notifications op queued. The guard pointer is re-read after locking:
// an async completion may hold a control that was attached to another tree
// while its validator ran, in which case it retries on the adopted guard.
func (c *controlBase) runGuarded(op func()) {
	for {
		g := c.guard.Load()
		g.mu.Lock()
		if c.guard.Load() != g {
			g.mu.Unlock()
			continue
		}
		op()
		queued := g.queued
		g.queued = nil
		g.mu.Unlock()
		for _, fn := range queued {
			fn()
		}
		return
	}
}

// enqueue defers fn until the current mutation releases the tree guard.
// Must be called with the guard held.
func (c *controlBase) enqueue(fn func()) {
	g := c.guard.Load()
	g.queued = append(g.queued, fn)
}

// adoptGuard moves the control and its whole subtree onto g. The subtree's
// previous guard is held for the move, so an async completion still holding
// it observes the switch before it can touch the tree. Must be called with
// g held.
func (c *controlBase) adoptGuard(g *treeGuard) {
	old := c.guard.Load()
	if old == g {
		return
	}
	old.mu.Lock()
	c.repointGuard(g)
	old.mu.Unlock()
}

func (c *controlBase) repointGuard(g *treeGuard) {
	c.guard.Store(g)
	c.self.forEachChild(func(child Control) {
		child.base().repointGuard(g)
	})
}
