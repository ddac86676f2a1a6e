package prefabs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDecodeCameraRigSpecKeepsDefaults(t *testing.T) {
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(`
position_mode: station
rotation_homing: slerp
station: Tower
occlusion:
  clearance: 0.25
`), &raw))

	spec, err := DecodeCameraRigSpec(raw)
	require.NoError(t, err)

	assert.Equal(t, rig.DefaultFirstPersonName, spec.FirstPerson)
	assert.Equal(t, rig.DefaultThirdPersonName, spec.ThirdPerson)
	assert.Equal(t, "Tower", spec.Station)

	p := spec.Param()
	def := rig.DefaultParam()
	assert.Equal(t, rig.PositionStation, p.PositionMode)
	assert.Equal(t, def.RotationMode, p.RotationMode)
	assert.Equal(t, rig.HomingSlerp, p.RotationHoming)
	assert.Equal(t, def.PositionRate, p.PositionRate)
	assert.Equal(t, def.RotationRate, p.RotationRate)
	assert.True(t, p.AutoAvoid)
	assert.Nil(t, p.Station, "references are resolved later")

	occ := spec.OcclusionSettings()
	assert.Equal(t, rig.AllLayers, occ.Mask)
	assert.InDelta(t, 0.25, float64(occ.Clearance), 1e-6)
	assert.InDelta(t, float64(rig.DefaultOcclusion().EscapeTrap), float64(occ.EscapeTrap), 1e-6)
}

func TestDecodeCameraRigSpecErrors(t *testing.T) {
	_, err := DecodeCameraRigSpec(map[string]any{"position_mode": "sideways"})
	assert.ErrorIs(t, err, rig.ErrUnknownMode)
}

func TestCameraRigSpecParamVectors(t *testing.T) {
	spec := DefaultCameraRigComponentSpec()
	spec.PositionRate = []float32{1, 2}
	spec.CustomPosition = []float32{4, 5, 6}
	spec.CustomRotation = []float32{90}
	spec.Occlusion.Mask = 6

	p := spec.Param()
	assert.Equal(t, mgl32.Vec3{1, 2, rig.DefaultParam().PositionRate[2]}, p.PositionRate)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, p.CustomPosition)
	assert.Equal(t, mgl32.Vec3{90, 0, 0}, p.CustomRotation)
	assert.Equal(t, rig.Mask(6), spec.OcclusionSettings().Mask)
}

func TestMergeComponents(t *testing.T) {
	base := map[string]any{
		"transform":  map[string]any{"position": []any{0, 0, 0}, "rotation": []any{0, 90, 0}},
		"camera_tag": map[string]any{},
		"camera":     map[string]any{"near": 0.3},
	}
	override := map[string]any{
		"transform": map[string]any{"position": []any{1, 2, 3}},
		"camera":    nil,
		"director":  map[string]any{"script": "director.tengo"},
	}

	got := MergeComponents(base, override)

	transform := got["transform"].(map[string]any)
	assert.Equal(t, []any{1, 2, 3}, transform["position"])
	assert.Equal(t, []any{0, 90, 0}, transform["rotation"])
	assert.Nil(t, got["camera"])
	assert.Contains(t, got, "camera_tag")
	assert.Contains(t, got, "director")

	// inputs are untouched
	assert.Equal(t, []any{0, 0, 0}, base["transform"].(map[string]any)["position"])
}

func TestLoadCameraRigSpec(t *testing.T) {
	spec, err := LoadCameraRigSpec("camera_rig.yaml")
	require.NoError(t, err)
	assert.Equal(t, rig.PositionThirdPerson, spec.PositionMode)
	assert.Equal(t, "Player", spec.Target)
	assert.Equal(t, rig.ProbeCumulative, spec.Occlusion.Probes)

	_, err = LoadCameraRigSpec("prefabs/actor.yaml")
	assert.ErrorIs(t, err, ErrNoCameraRig)

	_, err = LoadCameraRigSpec("missing.yaml")
	assert.Error(t, err)
}

func TestVecHelpers(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{7, 1, 1}, Vec3([]float32{7}, mgl32.Vec3{1, 1, 1}))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, Vec3([]float32{1, 2, 3, 4}, mgl32.Vec3{}))
	assert.Equal(t, mgl32.Vec2{3, 9}, Vec2([]float32{3}, mgl32.Vec2{0, 9}))
}

func TestLoadScriptFallsBackToEmbedded(t *testing.T) {
	src, err := LoadScript("director.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "update := func(engine, state)")

	_, err = LoadScript("scripts/director.tengo")
	assert.NoError(t, err)
}
