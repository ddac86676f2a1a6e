package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/rigcam/rig"
	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is one entity: a name plus a map of component name to raw
// component spec. Level entries may name a Prefab whose components they
// extend.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Prefab     string         `yaml:"prefab,omitempty"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	err := DecodeComponentSpecInto(raw, &out)
	return out, err
}

// DecodeComponentSpecInto decodes raw over out, so fields missing from raw
// keep whatever out already held.
func DecodeComponentSpecInto[T any](raw any, out *T) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// MergeComponents overlays override onto base. Component maps present in both
// are merged key by key, anything else in override replaces base.
func MergeComponents(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		bm, okB := out[k].(map[string]any)
		om, okO := v.(map[string]any)
		if !okB || !okO {
			out[k] = v
			continue
		}
		merged := make(map[string]any, len(bm)+len(om))
		for mk, mv := range bm {
			merged[mk] = mv
		}
		for mk, mv := range om {
			merged[mk] = mv
		}
		out[k] = merged
	}
	return out
}

// Vec3 reads up to three components from v, keeping def for missing ones.
func Vec3(v []float32, def mgl32.Vec3) mgl32.Vec3 {
	for i := 0; i < len(v) && i < 3; i++ {
		def[i] = v[i]
	}
	return def
}

func Vec2(v []float32, def mgl32.Vec2) mgl32.Vec2 {
	for i := 0; i < len(v) && i < 2; i++ {
		def[i] = v[i]
	}
	return def
}

type TransformComponentSpec struct {
	Position []float32 `yaml:"position"`
	// Rotation is Euler degrees: pitch, yaw, roll.
	Rotation []float32 `yaml:"rotation"`
}

type CameraComponentSpec struct {
	Near   float32 `yaml:"near"`
	FovY   float32 `yaml:"fov_y"`
	Aspect float32 `yaml:"aspect"`
}

type CollisionLayerComponentSpec struct {
	Category uint32 `yaml:"category"`
}

type WallComponentSpec struct {
	A      []float32 `yaml:"a"`
	B      []float32 `yaml:"b"`
	MinY   float32   `yaml:"min_y"`
	MaxY   float32   `yaml:"max_y"`
	Radius float32   `yaml:"radius"`
}

type FloorComponentSpec struct {
	Y   float32   `yaml:"y"`
	Min []float32 `yaml:"min"`
	Max []float32 `yaml:"max"`
}

type PatrolComponentSpec struct {
	Points     [][]float32 `yaml:"points"`
	Speed      float32     `yaml:"speed"`
	Loop       bool        `yaml:"loop"`
	FaceMotion bool        `yaml:"face_motion"`
}

type AttachComponentSpec struct {
	Parent   string    `yaml:"parent"`
	Offset   []float32 `yaml:"offset"`
	Rotation []float32 `yaml:"rotation"`
}

type DirectorComponentSpec struct {
	Script string `yaml:"script"`
	Every  int    `yaml:"every"`
}

type OcclusionSpec struct {
	// Mask selects the collision categories that block the camera. Zero
	// means all of them.
	Mask       uint32          `yaml:"mask"`
	Clearance  float32         `yaml:"clearance"`
	EscapeTrap float32         `yaml:"escape_trap"`
	Probes     rig.ProbePolicy `yaml:"probes"`
}

type CameraRigComponentSpec struct {
	FirstPerson string `yaml:"first_person"`
	ThirdPerson string `yaml:"third_person"`

	AutoAvoid      bool             `yaml:"auto_avoid"`
	PositionMode   rig.PositionMode `yaml:"position_mode"`
	RotationMode   rig.RotationMode `yaml:"rotation_mode"`
	PositionHoming rig.HomingMode   `yaml:"position_homing"`
	RotationHoming rig.HomingMode   `yaml:"rotation_homing"`
	PositionRate   []float32        `yaml:"position_rate"`
	RotationRate   float32          `yaml:"rotation_rate"`

	Station string `yaml:"station"`
	Target  string `yaml:"target"`
	GazeAt  string `yaml:"gaze_at"`

	CustomPosition []float32 `yaml:"custom_position"`
	CustomRotation []float32 `yaml:"custom_rotation"`

	Occlusion OcclusionSpec `yaml:"occlusion"`
}

func DefaultCameraRigComponentSpec() CameraRigComponentSpec {
	p := rig.DefaultParam()
	occ := rig.DefaultOcclusion()
	return CameraRigComponentSpec{
		FirstPerson:    rig.DefaultFirstPersonName,
		ThirdPerson:    rig.DefaultThirdPersonName,
		AutoAvoid:      p.AutoAvoid,
		PositionMode:   p.PositionMode,
		RotationMode:   p.RotationMode,
		PositionHoming: p.PositionHoming,
		RotationHoming: p.RotationHoming,
		PositionRate:   p.PositionRate[:],
		RotationRate:   p.RotationRate,
		Occlusion: OcclusionSpec{
			Clearance:  occ.Clearance,
			EscapeTrap: occ.EscapeTrap,
			Probes:     occ.Probes,
		},
	}
}

// Param builds the reference-free part of the rig configuration.
func (s CameraRigComponentSpec) Param() rig.Param {
	def := rig.DefaultParam()
	return rig.Param{
		AutoAvoid:      s.AutoAvoid,
		PositionMode:   s.PositionMode,
		RotationMode:   s.RotationMode,
		PositionHoming: s.PositionHoming,
		RotationHoming: s.RotationHoming,
		PositionRate:   Vec3(s.PositionRate, def.PositionRate),
		RotationRate:   s.RotationRate,
		CustomPosition: Vec3(s.CustomPosition, mgl32.Vec3{}),
		CustomRotation: Vec3(s.CustomRotation, mgl32.Vec3{}),
	}
}

func (s CameraRigComponentSpec) OcclusionSettings() rig.Occlusion {
	mask := rig.Mask(s.Occlusion.Mask)
	if mask == 0 {
		mask = rig.AllLayers
	}
	return rig.Occlusion{
		Mask:       mask,
		Clearance:  s.Occlusion.Clearance,
		EscapeTrap: s.Occlusion.EscapeTrap,
		Probes:     s.Occlusion.Probes,
	}
}

// DecodeCameraRigSpec decodes raw on top of the defaults.
func DecodeCameraRigSpec(raw any) (CameraRigComponentSpec, error) {
	spec := DefaultCameraRigComponentSpec()
	if err := DecodeComponentSpecInto(raw, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: decode camera_rig: %w", err)
	}
	return spec, nil
}

// LoadCameraRigSpec reads the camera_rig component of the prefab at path.
func LoadCameraRigSpec(path string) (CameraRigComponentSpec, error) {
	ent, err := LoadEntityBuildSpec(path)
	if err != nil {
		return CameraRigComponentSpec{}, err
	}
	raw, ok := ent.Components["camera_rig"]
	if !ok {
		return CameraRigComponentSpec{}, fmt.Errorf("prefabs: %s: %w", path, ErrNoCameraRig)
	}
	return DecodeCameraRigSpec(raw)
}
