package featureflag

type Flag string

const (
	// Entity poses are kept without being forwarded to visuals.
	FlagDisableRenderEngine Flag = "DISABLE_RENDER_ENGINE"

	// Frame modules of the demo scene are not started.
	FlagDisableModules Flag = "DISABLE_MODULES"
)

var knownFlags = map[Flag]struct{}{
	FlagDisableRenderEngine: {},
	FlagDisableModules:      {},
}
