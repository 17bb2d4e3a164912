package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntityPoseChangeVisual(t *testing.T) {
	t.Run("pose is deferred while running", func(t *testing.T) {
		env := newTestEnv(t, RunStateRunning)
		e := env.newEntity(t, nil, KindModel)
		v := e.Visual().(*testVisual)

		require.NoError(t, e.SetRelativePose(position(1, 2, 3), false))
		require.True(t, v.dirty)
		requirePoseEqual(t, position(1, 2, 3), v.pending)
		requirePoseEqual(t, IdentityPose(), v.applied)

		v.flush()
		require.False(t, v.dirty)
		requirePoseEqual(t, position(1, 2, 3), v.applied)
	})

	t.Run("pose is applied immediately while paused", func(t *testing.T) {
		env := newTestEnv(t, RunStatePaused)
		e := env.newEntity(t, nil, KindModel)
		v := e.Visual().(*testVisual)

		require.NoError(t, e.SetRelativePose(position(1, 2, 3), false))
		require.False(t, v.dirty)
		requirePoseEqual(t, position(1, 2, 3), v.applied)
	})

	t.Run("pose is applied immediately while stopped", func(t *testing.T) {
		env := newTestEnv(t, RunStateStopped)
		e := env.newEntity(t, nil, KindModel)
		v := e.Visual().(*testVisual)

		require.NoError(t, e.SetRelativePose(position(4, 0, 0), false))
		require.False(t, v.dirty)
		requirePoseEqual(t, position(4, 0, 0), v.applied)
	})

	t.Run("static pose is applied immediately while running", func(t *testing.T) {
		env := newTestEnv(t, RunStateRunning)
		e := env.newEntity(t, nil, KindModel)
		e.SetStatic(true)
		v := e.Visual().(*testVisual)

		require.NoError(t, e.SetRelativePose(position(1, 0, 0), false))
		require.False(t, v.dirty)
		requirePoseEqual(t, position(1, 0, 0), v.applied)
	})

	t.Run("run state is read at each change", func(t *testing.T) {
		env := newTestEnv(t, RunStatePaused)
		e := env.newEntity(t, nil, KindModel)
		v := e.Visual().(*testVisual)

		env.world.SetRunState(RunStateRunning)
		require.NoError(t, e.SetRelativePose(position(1, 0, 0), false))
		require.True(t, v.dirty)

		env.world.SetRunState(RunStatePaused)
		require.NoError(t, e.SetRelativePose(position(2, 0, 0), false))
		require.False(t, v.dirty)
		requirePoseEqual(t, position(2, 0, 0), v.applied)
	})
}

func TestEntityPoseChangeHandlers(t *testing.T) {
	t.Run("only direct children are notified", func(t *testing.T) {
		env := newTestEnv(t, RunStatePaused)
		root := env.newEntity(t, nil, KindModel)
		a := env.newEntity(t, root, KindEntity)
		b := env.newEntity(t, a, KindEntity)

		var calls []uint32
		record := func(e *Entity) { calls = append(calls, e.ID) }
		root.SetPoseChangeHandler(record)
		a.SetPoseChangeHandler(record)
		b.SetPoseChangeHandler(record)

		require.NoError(t, root.SetRelativePose(position(1, 0, 0), true))
		require.Equal(t, []uint32{root.ID, a.ID}, calls)
	})

	t.Run("children are notified in insertion order", func(t *testing.T) {
		env := newTestEnv(t, RunStatePaused)
		root := env.newEntity(t, nil, KindModel)

		var calls []uint32
		record := func(e *Entity) { calls = append(calls, e.ID) }

		var expected []uint32
		for i := 0; i < 4; i++ {
			c := env.newEntity(t, root, KindEntity)
			c.SetPoseChangeHandler(record)
			expected = append(expected, c.ID)
		}

		require.NoError(t, root.SetRelativePose(position(1, 0, 0), true))
		require.Equal(t, expected, calls)
	})

	t.Run("handlers are not called without notify", func(t *testing.T) {
		env := newTestEnv(t, RunStatePaused)
		root := env.newEntity(t, nil, KindModel)
		a := env.newEntity(t, root, KindEntity)

		var calls int
		count := func(*Entity) { calls++ }
		root.SetPoseChangeHandler(count)
		a.SetPoseChangeHandler(count)

		require.NoError(t, root.SetRelativePose(position(1, 0, 0), false))
		require.Zero(t, calls)
		requirePoseEqual(t, position(1, 0, 0), root.Visual().(*testVisual).applied)
	})

	t.Run("child mutation from a handler notifies the grandchild", func(t *testing.T) {
		env := newTestEnv(t, RunStatePaused)
		root := env.newEntity(t, nil, KindModel)
		a := env.newEntity(t, root, KindEntity)
		b := env.newEntity(t, a, KindEntity)

		var bCalls int
		b.SetPoseChangeHandler(func(*Entity) { bCalls++ })
		a.SetPoseChangeHandler(func(e *Entity) {
			if e.RelativePose().Pos.X() == 0 {
				require.NoError(t, e.SetRelativePose(position(1, 0, 0), true))
			}
		})

		require.NoError(t, root.SetRelativePose(position(1, 0, 0), true))
		require.Equal(t, 1, bCalls)
	})
}

func TestEntityPoseChangeWithoutRender(t *testing.T) {
	physics := newTestPhysicsEngine()
	world := NewWorld(1, WorldConfig{
		Physics:  physics,
		RunState: RunStateRunning,
	})
	defer world.Close()

	e, err := world.NewEntity(nil, KindModel)
	require.NoError(t, err)
	require.Nil(t, e.Visual())

	require.NoError(t, e.SetRelativePose(position(1, 0, 0), true))
	requirePoseEqual(t, position(1, 0, 0), e.RelativePose())
}
