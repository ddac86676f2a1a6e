package system

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/ecs"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/ecs/entity"
	"github.com/milk9111/rigcam/prefabs"
	"github.com/milk9111/rigcam/rig"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectorFixture(t *testing.T, script string, every int, station mgl32.Vec3) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	addNamed(t, w, "Player", mgl32.Vec3{})
	addNamed(t, w, "Station", station)

	camera := addNamed(t, w, "Camera", mgl32.Vec3{})
	cr := &component.CameraRig{}
	spec := prefabs.DefaultCameraRigComponentSpec()
	spec.PositionMode = rig.PositionThirdPerson
	spec.RotationMode = rig.RotationThirdPerson
	entity.ApplyCameraRigSpec(cr, spec, "test")
	cr.Dirty = false
	require.NoError(t, ecs.Add(w, camera, component.CameraRigComponent.Kind(), cr))
	require.NoError(t, ecs.Add(w, camera, component.DirectorComponent.Kind(), &component.Director{Script: script, Every: every}))
	return w, camera
}

func inlineScripts(scripts map[string]string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		src, ok := scripts[name]
		if !ok {
			return nil, fmt.Errorf("no script %q", name)
		}
		return []byte(src), nil
	}
}

func cameraRig(t *testing.T, w *ecs.World, e ecs.Entity) *component.CameraRig {
	t.Helper()
	cr, ok := ecs.Get(w, e, component.CameraRigComponent.Kind())
	require.True(t, ok)
	return cr
}

func TestDirectorCutsToStation(t *testing.T) {
	cases := []struct {
		name     string
		station  mgl32.Vec3
		dirty    bool
		position rig.PositionMode
		rotation rig.RotationMode
	}{
		{"near_station", mgl32.Vec3{3, 0, 0}, true, rig.PositionStation, rig.RotationGaze},
		{"far_from_station", mgl32.Vec3{30, 0, 0}, false, rig.PositionThirdPerson, rig.RotationThirdPerson},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, camera := newDirectorFixture(t, "director.tengo", 0, c.station)
			var buf bytes.Buffer
			ds := NewDirectorSystem().WithLogger(zerolog.New(&buf))
			ds.Update(w)

			cr := cameraRig(t, w, camera)
			assert.Equal(t, c.dirty, cr.Dirty)
			assert.Equal(t, c.position, cr.Param.PositionMode)
			assert.Equal(t, c.rotation, cr.Param.RotationMode)
			if c.dirty {
				assert.Equal(t, "director:director.tengo", cr.Source)
				assert.Equal(t, rig.HomingLerp, cr.Param.PositionHoming)
				assert.Equal(t, "Station", cr.StationName)
				assert.Equal(t, "Player", cr.GazeName)
				assert.Contains(t, buf.String(), "station cut at 3.0")
			}
		})
	}
}

func TestDirectorSetsNamesAndAvoid(t *testing.T) {
	w, camera := newDirectorFixture(t, "names.tengo", 0, mgl32.Vec3{})
	ds := NewDirectorSystem()
	ds.Load = inlineScripts(map[string]string{"names.tengo": `
update := func(engine, state) {
	engine.station("Station")
	engine.gaze("Station")
	engine.target("")
	engine.avoid(false)
}
`})
	ds.Update(w)

	cr := cameraRig(t, w, camera)
	assert.True(t, cr.Dirty)
	assert.Equal(t, "Station", cr.StationName)
	assert.Equal(t, "Station", cr.GazeName)
	assert.Equal(t, "", cr.TargetName)
	assert.False(t, cr.Param.AutoAvoid)

	// the same requests again change nothing
	cr.Dirty = false
	ds.Update(w)
	assert.False(t, cr.Dirty)
}

func TestDirectorIgnoresUnknownMode(t *testing.T) {
	w, camera := newDirectorFixture(t, "bad.tengo", 0, mgl32.Vec3{})
	var buf bytes.Buffer
	ds := NewDirectorSystem().WithLogger(zerolog.New(&buf))
	ds.Load = inlineScripts(map[string]string{"bad.tengo": `
update := func(engine, state) {
	state.ok = engine.position_mode("sideways")
}
`})
	ds.Update(w)

	cr := cameraRig(t, w, camera)
	assert.False(t, cr.Dirty)
	assert.Equal(t, rig.PositionThirdPerson, cr.Param.PositionMode)
	assert.Contains(t, buf.String(), "director: unknown mode")
}

func TestDirectorKeepsStateAndThrottles(t *testing.T) {
	w, camera := newDirectorFixture(t, "count.tengo", 2, mgl32.Vec3{})
	ds := NewDirectorSystem()
	ds.Load = inlineScripts(map[string]string{"count.tengo": `
update := func(engine, state) {
	if is_undefined(state.n) {
		state.n = 0
	}
	state.n += 1
	engine.station("S" + string(state.n))
}
`})

	for i := 0; i < 3; i++ {
		ds.Update(w)
	}
	assert.Equal(t, "S2", cameraRig(t, w, camera).StationName)
}

func TestDirectorLogsLoadFailureOnce(t *testing.T) {
	w, camera := newDirectorFixture(t, "broken.tengo", 0, mgl32.Vec3{})
	var buf bytes.Buffer
	ds := NewDirectorSystem().WithLogger(zerolog.New(&buf))
	scripts := map[string]string{"broken.tengo": "update := func(engine, state) {"}
	ds.Load = inlineScripts(scripts)

	ds.Update(w)
	ds.Update(w)
	assert.Equal(t, 1, strings.Count(buf.String(), "director: load"))
	assert.False(t, cameraRig(t, w, camera).Dirty)

	scripts["broken.tengo"] = `
update := func(engine, state) {
	engine.position_mode("custom")
}
`
	ds.Update(w)
	assert.False(t, cameraRig(t, w, camera).Dirty, "failed scripts stay failed until invalidated")

	ds.Invalidate("broken.tengo")
	ds.Update(w)
	cr := cameraRig(t, w, camera)
	assert.True(t, cr.Dirty)
	assert.Equal(t, rig.PositionCustom, cr.Param.PositionMode)
}

func TestDirectorForgetsDestroyedCameras(t *testing.T) {
	w, camera := newDirectorFixture(t, "director.tengo", 0, mgl32.Vec3{})
	ds := NewDirectorSystem()
	ds.Update(w)
	require.Len(t, ds.scripts, 1)

	require.True(t, ecs.DestroyEntity(w, camera))
	ds.Update(w)
	assert.Empty(t, ds.scripts)
}

func TestDirectorEngineQueries(t *testing.T) {
	w, camera := newDirectorFixture(t, "query.tengo", 0, mgl32.Vec3{0, 4, 3})
	ds := NewDirectorSystem()
	ds.Load = inlineScripts(map[string]string{"query.tengo": `
update := func(engine, state) {
	p := engine.position("Station")
	if engine.distance("Player", "Station") == 5.0 && p[1] == 4.0 && engine.distance("Player", "Nobody") < 0 {
		engine.target("Station")
	}
}
`})
	ds.Update(w)
	assert.Equal(t, "Station", cameraRig(t, w, camera).TargetName)
}

func TestDirectorParamReportsNamesUnderMutatorKeys(t *testing.T) {
	w, camera := newDirectorFixture(t, "readback.tengo", 0, mgl32.Vec3{})
	ds := NewDirectorSystem()
	ds.Load = inlineScripts(map[string]string{"readback.tengo": `
update := func(engine, state) {
	engine.station("Station")
	engine.gaze("Player")
	p := engine.param()
	if p.station == "Station" && p.gaze == "Player" {
		engine.target(p.gaze)
	}
}
`})
	ds.Update(w)

	cr := cameraRig(t, w, camera)
	assert.Equal(t, "Player", cr.TargetName)
	assert.Equal(t, "Player", cr.GazeName)
}
