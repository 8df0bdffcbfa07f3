package define

// Assign stores value at path in root, resolving conflicts with existing
// nodes according to the lengthen and shorten policies in opts.
//
// Assign never fails. A define that conflicts with the tree is either
// applied by replacing the conflicting node or dropped entirely, and the
// outcome is reported to the configured [Observer]. An empty path is
// ignored.
func Assign(root *Map, path KeyPath, value Scalar, opts ...Option) {
	makeConfig(opts...).assign(root, path, value)
}

func (c config) assign(root *Map, path KeyPath, value Scalar) {
	if len(path) == 0 {
		return
	}

	target := root

	for n, h := range path.Head() {
		next, ok := target.Get(h)
		if !ok {
			next = NewMap()
			target.Set(h, next)
		}

		branch, ok := next.(*Map)
		if !ok {
			event := Event{
				Key:   path,
				Path:  path[:n+1],
				Value: value.v,
				Prior: next.Native(),
			}

			if !c.lengthen {
				event.Kind = IgnoredOverwrite
				c.observer.Observe(event)

				return
			}

			event.Kind = OverwriteLeaf
			c.observer.Observe(event)

			branch = NewMap()
			target.Set(h, branch)
		}

		target = branch
	}

	tail := path.Tail()

	// A map is never merged into a list. For a single-component path the
	// root is the target, so the root level follows the shorten rule too.
	if sub, ok := target.Get(tail); ok && sub.Kind() == KindMap {
		event := Event{
			Key:   path,
			Path:  path,
			Value: value.v,
			Prior: sub.Native(),
		}

		if c.shorten {
			event.Kind = PruneSubtree
			c.observer.Observe(event)
			target.Set(tail, value)
		} else {
			event.Kind = IgnoredPrune
			c.observer.Observe(event)
		}

		return
	}

	c.merge(target, path, value)
}

// merge applies the multi-value rule at target[path.Tail()], which must not
// hold a map: an absent key is set, a scalar becomes a two-element list, and
// a list is extended.
func (c config) merge(target *Map, path KeyPath, value Scalar) {
	key := path.Tail()
	event := Event{Key: path, Path: path, Value: value.v}

	prior, ok := target.Get(key)
	if !ok {
		event.Kind = LeafSet
		target.Set(key, value)
		c.observer.Observe(event)

		return
	}

	event.Kind = LeafToList
	event.Prior = prior.Native()

	switch leaf := prior.(type) {
	case Scalar:
		target.Set(key, List{leaf, value})
	case List:
		target.Set(key, append(leaf, value))
	}

	c.observer.Observe(event)
}
