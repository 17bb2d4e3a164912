package featureflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureFlag(t *testing.T) {
	f := New([]string{string(FlagDisableModules)})

	t.Run("run if set", func(t *testing.T) {
		var modulesDisabled bool
		f.IfSet(FlagDisableModules, func() {
			modulesDisabled = true
		})
		require.True(t, modulesDisabled)

		var renderDisabled bool
		f.IfSet(FlagDisableRenderEngine, func() {
			renderDisabled = true
		})
		require.False(t, renderDisabled)
	})

	t.Run("run if not set", func(t *testing.T) {
		var startModules bool
		f.IfNotSet(FlagDisableModules, func() {
			startModules = true
		})
		require.False(t, startModules)

		var render bool
		f.IfNotSet(FlagDisableRenderEngine, func() {
			render = true
		})
		require.True(t, render)
	})

	t.Run("is set", func(t *testing.T) {
		require.True(t, f.IsSet(FlagDisableModules))
		require.False(t, f.IsSet(FlagDisableRenderEngine))
	})
}

func TestFeatureFlagValidate(t *testing.T) {
	require.NoError(t, New(nil).Validate())
	require.NoError(t, New([]string{
		string(FlagDisableModules),
		string(FlagDisableRenderEngine),
	}).Validate())
	require.Error(t, New([]string{"DISABLE_SESSION_STATE"}).Validate())
}
