package types

// RefineAbstractTypeTo resolves the placeholder `id` to `to`. Every edge
// subscribed to the placeholder is repointed to `to`, the placeholder becomes
// a forwarding stub, and every container whose edge moved re-derives its own
// abstractness — cascading uniquing and duplicate collapse through the
// containment graph until it is quiescent. By the time this returns there are
// no stale abstractness flags and no dangling edges.
//
// Only opaque placeholders may undergo identity-changing refinement; anything
// else is a ProtocolError and leaves the graph untouched.
func (c *Context) RefineAbstractTypeTo(id, to TypeID) error {
	n := c.node(id)
	switch {
	case n == nil:
		return protocolErr("type %d does not exist", id)
	case n.dead:
		return protocolErr("placeholder %d was already resolved", id)
	case n.kind != KindOpaque:
		return protocolErr("type %d is a %s, not a placeholder", id, n.kind)
	}
	target := c.live(to)
	if target == nil {
		return protocolErr("refinement target %d is not a live type", to)
	}
	if to == id {
		return protocolErr("placeholder %d cannot be refined to itself", id)
	}
	c.replaceAllUses(id, to)
	c.drainPending()
	return nil
}

// replaceAllUses permanently redirects every subscribed edge of `old` to
// `to`, turns `old` into a forwarding stub, and queues each touched container
// for re-derivation. A container already sitting in a uniquing table is
// removed under its stale key before its edge moves.
//
// Subscription lists are appended in construction order and walked front to
// back, so collapse order is reproducible within one run.
func (c *Context) replaceAllUses(old, to TypeID) {
	n := &c.arena[old]
	users := n.users
	n.users = nil
	n.dead = true
	n.abstract = false
	n.uniqued = false
	n.forward = to
	for _, e := range users {
		cn := &c.arena[e.container]
		if cn.dead {
			continue
		}
		if cn.uniqued {
			c.tableRemove(e.container)
		}
		cn.contained[e.slot] = to
		t := &c.arena[to]
		if t.abstract {
			t.users = append(t.users, e)
		}
		c.pending = append(c.pending, e.container)
	}
}

// drainPending runs the resolution state machine to quiescence: each queued
// container is re-examined and either promoted to concrete (with its whole
// mutually-abstract component), re-inserted under its final key, or skipped
// when a collapse already destroyed it.
func (c *Context) drainPending() {
	for len(c.pending) > 0 {
		id := c.pending[0]
		c.pending = c.pending[1:]
		n := &c.arena[id]
		switch {
		case n.dead:
			// collapsed while queued
		case n.abstract:
			if comp := c.concreteComponent(id); comp != nil {
				c.promote(comp)
			}
		case !n.uniqued:
			// a concrete node whose key changed under it (one of its
			// canonical components collapsed); find its new home
			c.finalKeyInsert(id)
		}
	}
}

// concreteComponent decides whether `start` is ready to become concrete.
// A node is still genuinely abstract only if it can reach a live placeholder;
// a cycle of composites that are abstract solely because of one another is
// ready. The walk visits each abstract node once, never revisiting an edge,
// so self-referential shapes terminate.
//
// Returns the visited nodes in deterministic DFS preorder when no placeholder
// is reachable, nil otherwise.
func (c *Context) concreteComponent(start TypeID) []TypeID {
	visited := map[TypeID]bool{start: true}
	comp := []TypeID{start}
	stack := []TypeID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &c.arena[id]
		if n.kind == KindOpaque {
			return nil
		}
		for _, t := range n.contained {
			if visited[t] || !c.arena[t].abstract {
				continue
			}
			visited[t] = true
			comp = append(comp, t)
			stack = append(stack, t)
		}
	}
	return comp
}

// promote flips an entire mutually-abstract component to concrete, then runs
// insert-or-collapse on each member and finally wakes the members' remaining
// subscribers so abstractness can keep unwinding up the graph.
//
// Waking must not consume the subscription lists: a member that survived its
// own insert can still be repointed and collapsed while the queue drains (a
// sibling's collapse moves one of its edges, the re-insert under the new key
// hits a pre-existing duplicate), and that collapse repoints referrers through
// the same list. replaceAllUses is the only place a list is consumed.
func (c *Context) promote(comp []TypeID) {
	for _, id := range comp {
		c.arena[id].abstract = false
	}
	for _, id := range comp {
		if !c.arena[id].dead {
			c.finalKeyInsert(id)
		}
	}
	for _, id := range comp {
		n := &c.arena[id]
		if n.dead {
			continue // collapse already requeued its subscribers
		}
		for _, e := range n.users {
			if !c.arena[e.container].dead {
				c.pending = append(c.pending, e.container)
			}
		}
	}
}
