package rig

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

const (
	DefaultFirstPersonName = "CameraPointPlayer"
	DefaultThirdPersonName = "CameraPointObserver"
)

// Frame records the intermediate results of the last Update.
type Frame struct {
	Resolved   Pose
	Correction Correction
	Avoided    bool
	DT         float32
}

// Rig drives one camera. Update runs resolve, correct and blend in that order
// and is meant to be called once per frame from the simulation thread.
type Rig struct {
	param     Param
	occlusion Occlusion
	rigs      Rigs
	scene     SceneQuery

	pose   Pose
	target mgl32.Vec3
	frame  Frame

	logger zerolog.Logger
}

type Option func(*Rig)

func WithScene(scene SceneQuery) Option {
	return func(r *Rig) {
		r.scene = scene
	}
}

func WithOcclusion(occ Occlusion) Option {
	return func(r *Rig) {
		r.occlusion = occ
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Rig) {
		r.logger = logger
	}
}

// WithPose places the camera before the first update.
func WithPose(p Pose) Option {
	return func(r *Rig) {
		r.pose = p
	}
}

// WithRigs binds the rig points directly, skipping name lookup.
func WithRigs(first, third Reference) Option {
	return func(r *Rig) {
		r.rigs = Rigs{FirstPerson: first, ThirdPerson: third}
	}
}

func New(p Param, options ...Option) *Rig {
	r := &Rig{
		param:     p,
		occlusion: DefaultOcclusion(),
		pose:      IdentityPose(),
		target:    p.CustomPosition,
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(r)
	}
	r.pose.Rotation = r.pose.Rotation.Normalize()
	return r
}

// Bind looks up the first- and third-person rig points by name. A name that
// cannot be found is logged and left unbound; modes that need it fall back
// until Bind succeeds.
func (r *Rig) Bind(f Finder, firstName, thirdName string) {
	if r == nil {
		return
	}
	r.rigs.FirstPerson = r.find(f, firstName)
	r.rigs.ThirdPerson = r.find(f, thirdName)
}

func (r *Rig) find(f Finder, name string) Reference {
	if f == nil || name == "" {
		return nil
	}
	ref, ok := f.FindByName(name)
	if !ok || ref == nil {
		r.logger.Warn().Str("rig", name).Msg("rig point not found")
		return nil
	}
	return ref
}

// SetParam replaces the whole configuration. It takes effect on the next Update.
func (r *Rig) SetParam(p Param) {
	if r == nil {
		return
	}
	r.param = p
}

func (r *Rig) Param() Param {
	if r == nil {
		return Param{}
	}
	return r.param
}

func (r *Rig) SetOcclusion(occ Occlusion) {
	if r == nil {
		return
	}
	r.occlusion = occ
}

func (r *Rig) Occlusion() Occlusion {
	if r == nil {
		return Occlusion{}
	}
	return r.occlusion
}

func (r *Rig) SetScene(scene SceneQuery) {
	if r == nil {
		return
	}
	r.scene = scene
}

func (r *Rig) FirstPersonRig() Reference {
	if r == nil {
		return nil
	}
	return r.rigs.FirstPerson
}

func (r *Rig) ThirdPersonRig() Reference {
	if r == nil {
		return nil
	}
	return r.rigs.ThirdPerson
}

func (r *Rig) Pose() Pose {
	if r == nil {
		return IdentityPose()
	}
	return r.pose
}

// SetPose teleports the camera. The next Update blends from here.
func (r *Rig) SetPose(p Pose) {
	if r == nil {
		return
	}
	p.Rotation = p.Rotation.Normalize()
	r.pose = p
}

// Frame returns the diagnostics of the last Update.
func (r *Rig) Frame() Frame {
	if r == nil {
		return Frame{}
	}
	return r.frame
}

// Update advances the camera by dt seconds and returns the new pose.
func (r *Rig) Update(dt float32, lens Lens) Pose {
	if r == nil {
		return IdentityPose()
	}

	target := Resolve(r.param, r.rigs, r.pose, r.target)
	r.target = target.Position

	corr := Correction{Position: target.Position}
	avoided := r.param.AutoAvoid && r.scene != nil
	if avoided {
		corr = Correct(r.scene, r.occlusion, r.param.Target, r.pose, lens, target.Position)
	}

	pos := BlendPosition(r.pose.Position, corr.Position, r.param.PositionHoming, r.param.PositionRate, dt)
	rot := BlendRotation(r.pose.Rotation, target.Rotation, r.param.RotationHoming, r.param.RotationRate, dt)

	r.pose = Pose{Position: pos, Rotation: rot}
	r.frame = Frame{
		Resolved:   target,
		Correction: corr,
		Avoided:    avoided,
		DT:         dt,
	}
	return r.pose
}
