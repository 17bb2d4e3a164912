package models

import "sync"

// A sequential id generator. The zero value is ready to use.
//
// Entity ids are never given back to the generator so that an id keeps
// naming the same entity for the whole life of a world. Ids of short lived
// registrations such as frame handlers are reused.
type SequentialIDGenerator struct {
	mutex       sync.Mutex
	currentID   uint32
	reusableIDs map[uint32]struct{}
}

// New returns a sequential id, or a previously reused one if any.
func (g *SequentialIDGenerator) New() uint32 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	for id := range g.reusableIDs {
		delete(g.reusableIDs, id)
		return id
	}

	g.currentID++
	return g.currentID
}

// Reuse marks the given id as reusable. Reusable ids are returned in priority
// when using New.
func (g *SequentialIDGenerator) Reuse(id uint32) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.reusableIDs == nil {
		g.reusableIDs = make(map[uint32]struct{})
	}

	g.reusableIDs[id] = struct{}{}
}

// Last returns the last id generated without reuse, 0 if none.
func (g *SequentialIDGenerator) Last() uint32 {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.currentID
}
