package main

import (
	"math"

	"github.com/aukilabs/posegraph/models"
	"github.com/aukilabs/posegraph/modules"
	"github.com/aukilabs/posegraph/modules/orbit"
	"github.com/aukilabs/posegraph/modules/settle"
	"github.com/go-gl/mathgl/mgl64"
)

// The number of frames a crate falls before it settles.
const crateSettleFrames = 120

// demoScene is the scene a world starts with: a static ground, a cart that
// orbits around the origin and a crate that settles after a while.
type demoScene struct {
	ground  *models.Entity
	cart    *models.Entity
	chassis *models.Entity
	antenna *models.Entity
	crate   *models.Entity
}

func newDemoScene(w *models.World) (demoScene, error) {
	var s demoScene
	var err error

	if s.ground, err = newNamedEntity(w, nil, models.KindModel, "ground"); err != nil {
		return demoScene{}, err
	}
	s.ground.SetStatic(true)

	if s.cart, err = newNamedEntity(w, nil, models.KindModel, "cart"); err != nil {
		return demoScene{}, err
	}
	if s.chassis, err = newNamedEntity(w, s.cart, models.KindBody, "chassis"); err != nil {
		return demoScene{}, err
	}
	if err = s.cart.SetCanonicalBody(s.chassis); err != nil {
		return demoScene{}, err
	}
	if err = s.chassis.SetRelativePosition(mgl64.Vec3{0, 0, 0.5}); err != nil {
		return demoScene{}, err
	}
	if s.antenna, err = newNamedEntity(w, s.chassis, models.KindEntity, "antenna"); err != nil {
		return demoScene{}, err
	}
	if err = s.antenna.SetRelativePosition(mgl64.Vec3{0, 0, 1}); err != nil {
		return demoScene{}, err
	}

	if s.crate, err = newNamedEntity(w, nil, models.KindModel, "crate"); err != nil {
		return demoScene{}, err
	}
	if err = s.crate.SetRelativePosition(mgl64.Vec3{2, 2, 0}); err != nil {
		return demoScene{}, err
	}
	if _, err = newNamedEntity(w, s.crate, models.KindBody, "crate_body"); err != nil {
		return demoScene{}, err
	}

	return s, nil
}

func (s demoScene) modules() []modules.Module {
	return []modules.Module{
		&orbit.Module{
			Model:  s.cart,
			Center: mgl64.Vec3{0, 0, 0.5},
			Radius: 5,
			Step:   math.Pi / 360,
		},
		&settle.Module{
			Entity:      s.crate,
			AfterFrames: crateSettleFrames,
		},
	}
}

func newNamedEntity(w *models.World, parent *models.Entity, k models.Kind, name string) (*models.Entity, error) {
	e, err := w.NewEntity(parent, k)
	if err != nil {
		return nil, err
	}

	e.SetName(name)
	return e, nil
}
