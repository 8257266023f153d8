package core

import "climatlas/schema"

// sceneKey pairs a target scene with the mode active when it was requested.
type sceneKey struct {
	scene schema.Scene
	mode  schema.DisplayMode
}

// sceneModeTable resolves the display mode after entering a scene.
// The distribution scene always shows values at a year. The change and
// compare scenes need a derived quantity, so a value mode is upgraded to
// slope; an explicit delta choice survives the transition.
var sceneModeTable = map[sceneKey]schema.DisplayMode{
	{schema.DistributionScene, schema.ValueMode}: schema.ValueMode,
	{schema.DistributionScene, schema.DeltaMode}: schema.ValueMode,
	{schema.DistributionScene, schema.SlopeMode}: schema.ValueMode,
	{schema.ChangeScene, schema.ValueMode}:       schema.SlopeMode,
	{schema.ChangeScene, schema.DeltaMode}:       schema.DeltaMode,
	{schema.ChangeScene, schema.SlopeMode}:       schema.SlopeMode,
	{schema.CompareScene, schema.ValueMode}:      schema.SlopeMode,
	{schema.CompareScene, schema.DeltaMode}:      schema.DeltaMode,
	{schema.CompareScene, schema.SlopeMode}:      schema.SlopeMode,
}

// modeSceneTable resolves the scene after an explicit mode choice made
// outside the scene buttons. Value belongs to the distribution scene; the
// change-over-time modes belong to the change scene.
var modeSceneTable = map[schema.DisplayMode]schema.Scene{
	schema.ValueMode: schema.DistributionScene,
	schema.DeltaMode: schema.ChangeScene,
	schema.SlopeMode: schema.ChangeScene,
}

// resolveScene returns the (scene, mode) pair after a scene request.
func resolveScene(target schema.Scene, current schema.DisplayMode) (schema.Scene, schema.DisplayMode) {
	if mode, ok := sceneModeTable[sceneKey{target, current}]; ok {
		return target, mode
	}
	return target, current
}

// resolveMode returns the (scene, mode) pair after an explicit mode request.
// The mode control always lands on its home scene, even from the compare lab.
func resolveMode(target schema.DisplayMode) (schema.Scene, schema.DisplayMode) {
	return modeSceneTable[target], target
}
