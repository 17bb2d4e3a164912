package models

// PhysicsEngine is the interface to the physics engine that simulates rigid
// bodies.
type PhysicsEngine interface {
	// Registers an entity. Called once when the entity is created.
	AddEntity(e *Entity)

	// Unregisters an entity. Called once when the entity is destroyed.
	RemoveEntity(e *Entity)

	// Enables or disables the simulation of a rigid body.
	SetEnabled(body *Entity, enabled bool)
}

// VisualFactory creates and deletes the visuals that represent entities in
// the rendering scene.
type VisualFactory interface {
	// Creates a visual. parent is nil for visuals attached to the scene
	// root.
	CreateVisual(name string, parent Visual, owner *Entity) Visual

	// Deletes a visual created by CreateVisual.
	DeleteVisual(v Visual)
}

// Visual is a handle on the visual representation of an entity.
type Visual interface {
	// Renames the visual.
	SetName(name string)

	// Applies a pose immediately.
	SetPose(p Pose)

	// Records a pose to be applied during the next render pass.
	MarkDirty(p Pose)
}

type noopPhysicsEngine struct{}

func (noopPhysicsEngine) AddEntity(*Entity) {}
func (noopPhysicsEngine) RemoveEntity(*Entity) {}
func (noopPhysicsEngine) SetEnabled(*Entity, bool) {}
