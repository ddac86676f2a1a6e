package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rigcam/ecs/component"
	"github.com/milk9111/rigcam/ecs/entity"
	"github.com/milk9111/rigcam/rig"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var positionKeys = map[ebiten.Key]rig.PositionMode{
	ebiten.Key1: rig.PositionFirstPerson,
	ebiten.Key2: rig.PositionThirdPerson,
	ebiten.Key3: rig.PositionStation,
	ebiten.Key4: rig.PositionCustom,
}

var rotationKeys = map[ebiten.Key]rig.RotationMode{
	ebiten.KeyQ: rig.RotationFirstPerson,
	ebiten.KeyW: rig.RotationThirdPerson,
	ebiten.KeyE: rig.RotationStation,
	ebiten.KeyR: rig.RotationGaze,
	ebiten.KeyT: rig.RotationCustom,
}

func (v *viewer) handleKeys() {
	for key, m := range positionKeys {
		if inpututil.IsKeyJustPressed(key) {
			v.edit(func(cr *component.CameraRig) { cr.Param.PositionMode = m })
		}
	}
	for key, m := range rotationKeys {
		if inpututil.IsKeyJustPressed(key) {
			v.edit(func(cr *component.CameraRig) { cr.Param.RotationMode = m })
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		v.cyclePositionHoming()
	case inpututil.IsKeyJustPressed(ebiten.KeyJ):
		v.cycleRotationHoming()
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		v.toggleAvoid()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		v.toggleProbes()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		v.copyConfig()
	case inpututil.IsKeyJustPressed(ebiten.KeyF5):
		v.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.paused = !v.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		v.showPanel = !v.showPanel
	}
}

// edit swaps the camera's configuration; the rig picks it up on the next step.
func (v *viewer) edit(fn func(cr *component.CameraRig)) {
	if !v.scene.Edit("rigview", fn) {
		v.setStatus("no camera rig in level")
	}
}

func (v *viewer) cyclePosition() {
	v.edit(func(cr *component.CameraRig) { cr.Param.PositionMode = cr.Param.PositionMode.Next() })
}

func (v *viewer) cycleRotation() {
	v.edit(func(cr *component.CameraRig) { cr.Param.RotationMode = cr.Param.RotationMode.Next() })
}

func (v *viewer) cyclePositionHoming() {
	v.edit(func(cr *component.CameraRig) { cr.Param.PositionHoming = cr.Param.PositionHoming.Next() })
}

func (v *viewer) cycleRotationHoming() {
	v.edit(func(cr *component.CameraRig) { cr.Param.RotationHoming = cr.Param.RotationHoming.Next() })
}

func (v *viewer) toggleAvoid() {
	v.edit(func(cr *component.CameraRig) { cr.Param.AutoAvoid = !cr.Param.AutoAvoid })
}

func (v *viewer) toggleProbes() {
	v.edit(func(cr *component.CameraRig) {
		if cr.Occlusion.Probes == rig.ProbeCumulative {
			cr.Occlusion.Probes = rig.ProbeIndependent
		} else {
			cr.Occlusion.Probes = rig.ProbeCumulative
		}
	})
}

// copyConfig puts the camera's current configuration on the clipboard in the
// camera_rig prefab format.
func (v *viewer) copyConfig() {
	_, cr, ok := v.scene.Camera()
	if !ok {
		return
	}
	out, err := yaml.Marshal(map[string]any{"camera_rig": entity.CameraRigSpec(cr)})
	if err != nil {
		log.Error().Err(err).Msg("marshal camera rig")
		return
	}
	if !v.clip.Copy(string(out)) {
		v.setStatus("clipboard unavailable")
		return
	}
	v.setStatus("camera_rig copied to clipboard")
}
