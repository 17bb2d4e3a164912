package models

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

const (
	// Returned when a world pose is set on a root that is not a model.
	ErrTypeInvalidConfiguration = "invalid-configuration"

	// Returned when a pose holds non-finite values or an orientation that
	// can't be normalized to a unit quaternion.
	ErrTypeDegeneratePose = "degenerate-pose"

	// Returned when a canonical body assignment is refused.
	ErrTypeInvalidCanonicalBody = "invalid-canonical-body"

	// Returned when an entity is created under a parent the world does not
	// own.
	ErrTypeUnknownParent = "unknown-parent"
)

// reportError sends a local failure to the diagnostic channel. Nothing in
// the entity tree is fatal to the simulation.
func (e *Entity) reportError(err error) {
	instrumentPoseError(err)

	logs.WithTag("entity_id", e.ID).
		WithTag("entity_name", e.Name()).
		Warn(err)
}

func newDegeneratePoseError(p Pose) error {
	return errors.New("pose can not be normalized").
		WithType(ErrTypeDegeneratePose).
		WithTag("pose", p.String())
}
