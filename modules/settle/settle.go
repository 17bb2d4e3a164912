// Package settle provides a module that marks an entity static once it has
// been simulated for a number of frames.
package settle

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/posegraph/models"
)

type Module struct {
	// The entity to settle.
	Entity *models.Entity

	// The number of frames before the entity is marked static.
	AfterFrames int

	frames int
}

func (m *Module) Name() string {
	return "settle"
}

func (m *Module) Init(w *models.World) error {
	if m.Entity == nil {
		return errors.New("settle target is missing")
	}

	if m.Entity.World() != w {
		return errors.New("settle target does not belong to the world").
			WithTag("entity_id", m.Entity.ID)
	}

	m.frames = 0
	return nil
}

func (m *Module) Update() {
	if m.Entity.IsStatic() {
		return
	}

	m.frames++
	if m.frames < m.AfterFrames {
		return
	}

	m.Entity.SetStatic(true)
	logs.WithTag("module", m.Name()).
		WithTag("entity_id", m.Entity.ID).
		WithTag("frames", m.frames).
		Info("entity settled")
}

func (m *Module) Close() {
}
