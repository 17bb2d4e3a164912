package models

const (
	applyModeDeferred  = "deferred"
	applyModeImmediate = "immediate"
	applyModeNone      = "none"
)

// poseChange forwards the current relative pose to the entity visual and
// calls the pose change handlers when notify is true.
//
// While the world runs, poses of non static entities are recorded on the
// visual and applied by the next render pass. Otherwise they are applied
// right away.
//
// Only the direct children handlers are called. Deeper descendants react
// when their own pose changes.
func (e *Entity) poseChange(notify bool) {
	mode := applyModeNone

	if e.visual != nil && e.world.RenderEnabled() {
		pose := e.RelativePose()

		if e.world.RunState() == RunStateRunning && !e.IsStatic() {
			e.visual.MarkDirty(pose)
			mode = applyModeDeferred
		} else {
			e.visual.SetPose(pose)
			mode = applyModeImmediate
		}
	}
	instrumentPoseChange(mode)

	if !notify {
		return
	}

	e.handlePoseChange()
	for _, c := range e.Children() {
		c.handlePoseChange()
	}
}

func (e *Entity) handlePoseChange() {
	if e.onPoseChange != nil {
		e.onPoseChange(e)
	}
}
