// Package orbit provides a module that moves a model on a horizontal circle
// by setting the world pose of its canonical body, the way a physics step
// reports the motion of a body.
package orbit

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/posegraph/models"
	"github.com/go-gl/mathgl/mgl64"
)

type Module struct {
	// The model to move. It must have a canonical body.
	Model *models.Entity

	// The center of the circle.
	Center mgl64.Vec3

	// The radius of the circle.
	Radius float64

	// The angle traveled at each frame, in radians.
	Step float64

	body  *models.Entity
	angle float64
}

func (m *Module) Name() string {
	return "orbit"
}

func (m *Module) Init(w *models.World) error {
	if m.Model == nil || !m.Model.IsModel() {
		return errors.New("orbit target is not a model")
	}

	if m.Model.World() != w {
		return errors.New("orbit target does not belong to the world").
			WithTag("entity_id", m.Model.ID)
	}

	m.body = m.Model.CanonicalBody()
	if m.body == nil {
		return errors.New("orbit target has no canonical body").
			WithTag("entity_id", m.Model.ID)
	}

	m.angle = 0
	return nil
}

// Update advances the canonical body along the circle, facing the direction
// of travel.
func (m *Module) Update() {
	m.angle = math.Mod(m.angle+m.Step, 2*math.Pi)

	sin, cos := math.Sincos(m.angle)
	pos := m.Center.Add(mgl64.Vec3{m.Radius * cos, m.Radius * sin, 0})
	rot := mgl64.QuatRotate(m.angle+math.Pi/2, mgl64.Vec3{0, 0, 1})

	// Errors are reported by the entity.
	m.body.SetWorldPose(models.Pose{Pos: pos, Rot: rot}, true)
}

func (m *Module) Close() {
	m.body = nil
}
