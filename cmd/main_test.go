package main

import (
	"testing"
	"time"

	"github.com/aukilabs/posegraph/featureflag"
	"github.com/aukilabs/posegraph/models"
	"github.com/aukilabs/posegraph/modules"
	"github.com/aukilabs/posegraph/physics"
	"github.com/aukilabs/posegraph/visual"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func validConfig() config {
	return config{
		AdminAddr:           ":18190",
		RunState:            "running",
		FrameDuration:       time.Millisecond * 15,
		RenderFrameDuration: time.Millisecond * 16,
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		conf := validConfig()
		conf.FeatureFlags = []string{string(featureflag.FlagDisableModules)}
		require.NoError(t, validateConfig(conf))
	})

	t.Run("empty admin address", func(t *testing.T) {
		conf := validConfig()
		conf.AdminAddr = ""
		require.Error(t, validateConfig(conf))
	})

	t.Run("unknown run state", func(t *testing.T) {
		conf := validConfig()
		conf.RunState = "flying"
		require.Error(t, validateConfig(conf))
	})

	t.Run("zero frame duration", func(t *testing.T) {
		conf := validConfig()
		conf.FrameDuration = 0
		require.Error(t, validateConfig(conf))
	})

	t.Run("zero render frame duration", func(t *testing.T) {
		conf := validConfig()
		conf.RenderFrameDuration = 0
		require.Error(t, validateConfig(conf))
	})

	t.Run("unknown feature flag", func(t *testing.T) {
		conf := validConfig()
		conf.FeatureFlags = []string{"DISABLE_EVERYTHING"}
		require.Error(t, validateConfig(conf))
	})
}

func TestDemoScene(t *testing.T) {
	var engine physics.Engine
	var scene visual.Scene

	world := models.NewWorld(1, models.WorldConfig{
		Physics:       &engine,
		Visuals:       &scene,
		RenderEnabled: true,
		RunState:      models.RunStateRunning,
	})
	defer world.Close()

	demo, err := newDemoScene(world)
	require.NoError(t, err)
	require.Equal(t, 6, world.EntityCount())
	require.Equal(t, 6, engine.Count())

	require.True(t, demo.ground.IsStatic())
	require.Equal(t, demo.chassis, demo.cart.CanonicalBody())
	require.InDelta(t, 1.5, demo.antenna.WorldPose().Pos.Z(), 1e-9)

	_, ok := scene.NodeByName("antenna_VISUAL")
	require.True(t, ok)

	stop, err := modules.Start(world, demo.modules()...)
	require.NoError(t, err)
	defer stop()

	for i := 0; i < crateSettleFrames; i++ {
		world.DispatchFrame()
	}
	require.True(t, demo.crate.IsStatic())

	chassisPos := demo.chassis.WorldPose().Pos
	require.InDelta(t, 5, mgl64.Vec2{chassisPos.X(), chassisPos.Y()}.Len(), 1e-9)
	require.InDelta(t, 1.5, demo.antenna.WorldPose().Pos.Z(), 1e-9)
}
