package models

import (
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Kind is the role an entity plays in the simulation.
type Kind int

const (
	// A plain spatial entity.
	KindEntity Kind = iota

	// A rigid body simulated by the physics engine.
	KindBody

	// A composite model grouping bodies and other entities.
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindBody:
		return "body"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

// PoseChangeHandler reacts to a change of an entity pose or of its parent
// pose.
type PoseChangeHandler func(e *Entity)

// Entity is a node of the world entity tree. Its relative pose is expressed
// in the frame of its parent. A root entity has its relative pose equal to
// its world pose.
//
// An entity is created with World.NewEntity and destroyed with
// World.RemoveEntity.
type Entity struct {
	ID uint32

	kind  Kind
	world *World

	mutex        sync.RWMutex
	name         string
	relativePose Pose
	static       bool

	// Set on the body side and on the model side of a canonical body
	// assignment. The model mutex is locked before the body one.
	isCanonicalBody bool
	canonicalBody   *Entity

	parent   *Entity
	children []*Entity

	visual       Visual
	onPoseChange PoseChangeHandler
}

// Kind returns the role of the entity.
func (e *Entity) Kind() Kind {
	return e.kind
}

func (e *Entity) IsModel() bool {
	return e.kind == KindModel
}

func (e *Entity) IsBody() bool {
	return e.kind == KindBody
}

// World returns the world that owns the entity.
func (e *Entity) World() *World {
	return e.world
}

func (e *Entity) Name() string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.name
}

// SetName renames the entity and its visual.
func (e *Entity) SetName(name string) {
	e.mutex.Lock()
	e.name = name
	e.mutex.Unlock()

	if e.visual != nil {
		e.visual.SetName(visualName(name))
	}
}

// Parent returns the parent entity, nil for a root.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// Children returns the direct children in insertion order.
func (e *Entity) Children() []*Entity {
	children := make([]*Entity, len(e.children))
	copy(children, e.children)
	return children
}

// Visual returns the visual attached to the entity. It is nil when the
// world render path is disabled.
func (e *Entity) Visual() Visual {
	return e.visual
}

// SetPoseChangeHandler sets the handler called when the entity pose or its
// parent pose changes with notification enabled.
func (e *Entity) SetPoseChangeHandler(h PoseChangeHandler) {
	e.onPoseChange = h
}

// SetCanonicalBody designates the body whose world pose drives the model
// world pose. Only a direct body child can be designated and the
// designation can't be changed afterwards.
func (e *Entity) SetCanonicalBody(body *Entity) error {
	if !e.IsModel() {
		return errors.New("canonical body can only be set on a model").
			WithType(ErrTypeInvalidCanonicalBody).
			WithTag("entity_id", e.ID).
			WithTag("kind", e.kind.String())
	}

	if body == nil || body.parent != e || !body.IsBody() {
		return errors.New("canonical body must be a body child of the model").
			WithType(ErrTypeInvalidCanonicalBody).
			WithTag("entity_id", e.ID)
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.canonicalBody == body {
		return nil
	}

	if e.canonicalBody != nil {
		return errors.New("model already has a canonical body").
			WithType(ErrTypeInvalidCanonicalBody).
			WithTag("entity_id", e.ID).
			WithTag("canonical_body_id", e.canonicalBody.ID).
			WithTag("body_id", body.ID)
	}

	e.canonicalBody = body
	body.setCanonicalBodyFlag(true)
	return nil
}

func (e *Entity) setCanonicalBodyFlag(v bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.isCanonicalBody = v
}

// CanonicalBody returns the canonical body of a model, nil if there is
// none.
func (e *Entity) CanonicalBody() *Entity {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.canonicalBody
}

func (e *Entity) IsCanonicalBody() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.isCanonicalBody
}

// clearCanonicalBody drops the canonical body assignment of a model when c
// is its canonical body.
func (e *Entity) clearCanonicalBody(c *Entity) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.canonicalBody != c {
		return
	}
	e.canonicalBody = nil
	c.setCanonicalBodyFlag(false)
}

// destroy releases the entity collaborator resources and unlinks it from
// the tree. Children are kept alive and become roots.
func (e *Entity) destroy() {
	e.world.physics.RemoveEntity(e)

	if e.visual != nil {
		e.world.visuals.DeleteVisual(e.visual)
		e.visual = nil
	}

	for _, c := range e.children {
		e.clearCanonicalBody(c)
		c.parent = nil
	}
	e.children = nil

	if p := e.parent; p != nil {
		p.removeChild(e)
		p.clearCanonicalBody(e)
		e.parent = nil
	}
}

func (e *Entity) removeChild(c *Entity) {
	for i, child := range e.children {
		if child == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

func visualName(name string) string {
	return name + "_VISUAL"
}
