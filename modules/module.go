package modules

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/posegraph/models"
)

// Module is the interface that describes a module that drives world entities
// at each frame.
type Module interface {
	// Returns the module name.
	Name() string

	// Initializes the module. Returning an error prevents the module from
	// being started.
	Init(*models.World) error

	// Updates the module. Called at each frame while the world is running.
	Update()

	// Releases the module resources.
	Close()
}

// Start initializes the given modules and registers their updates as world
// frame handlers. The returned function stops and closes the modules.
func Start(w *models.World, modules ...Module) (stop func(), err error) {
	var started []Module
	var cancels []func()

	stop = func() {
		for _, cancel := range cancels {
			cancel()
		}
		for _, m := range started {
			m.Close()
		}
	}

	for _, m := range modules {
		if err := m.Init(w); err != nil {
			stop()
			return nil, errors.New("initializing module failed").
				WithTag("module", m.Name()).
				WithTag("world_id", w.ID).
				Wrap(err)
		}

		started = append(started, m)
		cancels = append(cancels, w.HandleFrame(m.Update))

		logs.WithTag("module", m.Name()).
			WithTag("world_id", w.ID).
			Info("module started")
	}

	return stop, nil
}
