package models

func (e *Entity) IsStatic() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.static
}

// SetStatic sets whether the entity is static and propagates the value to
// the descendants that are not already static. Bodies reached by the
// propagation are disabled in the physics engine when static and enabled
// otherwise.
//
// Already static descendants are skipped: setting false does not clear the
// static flag of a descendant that was marked static on its own.
func (e *Entity) SetStatic(v bool) {
	e.mutex.Lock()
	e.static = v
	e.mutex.Unlock()

	instrumentStaticChange(v)

	for _, c := range e.children {
		if c.IsStatic() {
			continue
		}

		c.SetStatic(v)
		if c.IsBody() {
			e.world.physics.SetEnabled(c, !v)
		}
	}
}
