// Package physics provides an in-memory physics engine registry that tracks
// which entities are registered and whether rigid bodies are simulated.
package physics

import (
	"sync"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/posegraph/models"
)

// Engine is a physics engine registry. The zero value is ready to use.
type Engine struct {
	mutex    sync.RWMutex
	entities map[uint32]*models.Entity
	enabled  map[uint32]bool
}

func (e *Engine) init() {
	if e.entities == nil {
		e.entities = make(map[uint32]*models.Entity)
		e.enabled = make(map[uint32]bool)
	}
}

// AddEntity registers an entity. Bodies start enabled unless they are
// static.
func (e *Engine) AddEntity(entity *models.Entity) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.init()
	e.entities[entity.ID] = entity

	if entity.IsBody() {
		enabled := !entity.IsStatic()
		e.enabled[entity.ID] = enabled
		instrumentIncreaseBodyGauge()
		instrumentEnabledChange(enabled)
	}
}

// RemoveEntity unregisters an entity.
func (e *Engine) RemoveEntity(entity *models.Entity) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if _, ok := e.entities[entity.ID]; !ok {
		logs.WithTag("entity_id", entity.ID).
			Debug("removing an entity that is not registered")
		return
	}

	delete(e.entities, entity.ID)
	if _, ok := e.enabled[entity.ID]; ok {
		delete(e.enabled, entity.ID)
		instrumentDecreaseBodyGauge()
	}
}

// SetEnabled sets whether a body is simulated.
func (e *Engine) SetEnabled(body *models.Entity, enabled bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if _, ok := e.enabled[body.ID]; !ok {
		logs.WithTag("entity_id", body.ID).
			WithTag("kind", body.Kind().String()).
			Debug("enabling an entity that is not a registered body")
		return
	}

	e.enabled[body.ID] = enabled
	instrumentEnabledChange(enabled)
}

// IsEnabled reports whether a registered body is simulated.
func (e *Engine) IsEnabled(id uint32) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.enabled[id]
}

func (e *Engine) IsRegistered(id uint32) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	_, ok := e.entities[id]
	return ok
}

// Count returns the number of registered entities.
func (e *Engine) Count() int {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return len(e.entities)
}

// EnabledBodies returns the registered bodies that are simulated.
func (e *Engine) EnabledBodies() []*models.Entity {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	var bodies []*models.Entity
	for id, enabled := range e.enabled {
		if enabled {
			bodies = append(bodies, e.entities[id])
		}
	}
	return bodies
}
