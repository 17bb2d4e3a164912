package models

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

const testEpsilon = 1e-9

type testPhysicsEngine struct {
	added   []uint32
	removed []uint32
	toggles map[uint32][]bool
}

func newTestPhysicsEngine() *testPhysicsEngine {
	return &testPhysicsEngine{
		toggles: make(map[uint32][]bool),
	}
}

func (p *testPhysicsEngine) AddEntity(e *Entity) {
	p.added = append(p.added, e.ID)
}

func (p *testPhysicsEngine) RemoveEntity(e *Entity) {
	p.removed = append(p.removed, e.ID)
}

func (p *testPhysicsEngine) SetEnabled(body *Entity, enabled bool) {
	p.toggles[body.ID] = append(p.toggles[body.ID], enabled)
}

type testVisual struct {
	name    string
	parent  *testVisual
	owner   *Entity
	applied Pose
	pending Pose
	dirty   bool
	deleted bool
}

func (v *testVisual) SetName(name string) {
	v.name = name
}

func (v *testVisual) SetPose(p Pose) {
	v.applied = p
	v.dirty = false
}

func (v *testVisual) MarkDirty(p Pose) {
	v.pending = p
	v.dirty = true
}

func (v *testVisual) flush() {
	if v.dirty {
		v.applied = v.pending
		v.dirty = false
	}
}

type testVisualFactory struct {
	visuals []*testVisual
}

func (f *testVisualFactory) CreateVisual(name string, parent Visual, owner *Entity) Visual {
	v := &testVisual{
		name:    name,
		owner:   owner,
		applied: IdentityPose(),
	}
	if parent != nil {
		v.parent = parent.(*testVisual)
	}

	f.visuals = append(f.visuals, v)
	return v
}

func (f *testVisualFactory) DeleteVisual(v Visual) {
	v.(*testVisual).deleted = true
}

type testEnv struct {
	world   *World
	physics *testPhysicsEngine
	visuals *testVisualFactory
}

func newTestEnv(t *testing.T, s RunState) testEnv {
	physics := newTestPhysicsEngine()
	visuals := &testVisualFactory{}

	world := NewWorld(1, WorldConfig{
		Physics:       physics,
		Visuals:       visuals,
		RenderEnabled: true,
		RunState:      s,
	})
	t.Cleanup(world.Close)

	return testEnv{
		world:   world,
		physics: physics,
		visuals: visuals,
	}
}

func (env testEnv) newEntity(t *testing.T, parent *Entity, k Kind) *Entity {
	e, err := env.world.NewEntity(parent, k)
	require.NoError(t, err)
	return e
}

func requirePoseEqual(t *testing.T, expected, actual Pose) {
	t.Helper()
	require.Truef(t, expected.EqualWithEpsilon(actual, testEpsilon),
		"expected %s, got %s", expected, actual)
}

func position(x, y, z float64) Pose {
	return NewPose(x, y, z, mgl64.QuatIdent())
}
