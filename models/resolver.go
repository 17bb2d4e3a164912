package models

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/go-gl/mathgl/mgl64"
)

// RelativePose returns the pose of the entity relative to its parent.
func (e *Entity) RelativePose() Pose {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.relativePose
}

// WorldPose returns the pose of the entity in the world frame.
func (e *Entity) WorldPose() Pose {
	if e.parent != nil {
		return e.RelativePose().Add(e.parent.WorldPose())
	}
	return e.RelativePose()
}

// ModelRelativePose returns the pose of the entity relative to the closest
// model it belongs to. Models and roots are at the identity pose.
func (e *Entity) ModelRelativePose() Pose {
	if e.IsModel() || e.parent == nil {
		return IdentityPose()
	}
	return e.RelativePose().Add(e.parent.ModelRelativePose())
}

// SetRelativePose normalizes and sets the pose of the entity relative to its
// parent. A pose that can't be normalized is rejected and the current pose
// is kept.
//
// When notify is true, the pose change handlers of the entity and of its
// direct children are called.
func (e *Entity) SetRelativePose(p Pose, notify bool) error {
	p, err := p.Correct()
	if err != nil {
		e.reportError(err)
		return err
	}

	e.mutex.Lock()
	e.relativePose = p
	e.mutex.Unlock()

	e.poseChange(notify)
	return nil
}

// SetRelativePosition sets the position relative to the parent and keeps the
// current orientation.
func (e *Entity) SetRelativePosition(pos mgl64.Vec3) error {
	return e.SetRelativePose(Pose{
		Pos: pos,
		Rot: e.RelativePose().Rot,
	}, true)
}

// SetRelativeRotation sets the orientation relative to the parent and keeps
// the current position.
func (e *Entity) SetRelativeRotation(rot mgl64.Quat) error {
	return e.SetRelativePose(Pose{
		Pos: e.RelativePose().Pos,
		Rot: rot,
	}, true)
}

// SetWorldPose sets the pose of the entity in the world frame.
//
// Setting the world pose of the canonical body of a model moves the model
// instead: the body keeps its offset within the model and the model is
// placed so that the body ends up at p. The model's children are not
// notified in that case.
//
// Setting the world pose of a root that is not a model is a configuration
// error. Nothing is changed and the error is reported.
func (e *Entity) SetWorldPose(p Pose, notify bool) error {
	p, err := p.Correct()
	if err != nil {
		e.reportError(err)
		return err
	}

	switch parent := e.parent; {
	case parent != nil && parent.IsModel() && parent.CanonicalBody() == e:
		offset := e.RelativePose()

		var model Pose
		model.Rot = p.Rot.Mul(offset.Rot.Inverse())
		model.Pos = p.Pos.Sub(model.Rot.Rotate(offset.Pos))
		return parent.SetWorldPose(model, false)

	case parent != nil:
		return e.SetRelativePose(p.Sub(parent.WorldPose()), notify)

	case e.IsModel():
		return e.SetRelativePose(p, notify)

	default:
		err := errors.New("world pose set on a root that is not a model").
			WithType(ErrTypeInvalidConfiguration).
			WithTag("entity_id", e.ID).
			WithTag("kind", e.kind.String())
		e.reportError(err)
		return err
	}
}
