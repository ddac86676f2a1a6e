package component

import "github.com/milk9111/rigcam/rig"

// CameraRig configures the rig driving a camera entity. References are held
// by name and resolved by the camera rig system whenever Dirty is set; the
// reference fields of Param are ignored.
type CameraRig struct {
	Rig *rig.Rig

	FirstPersonName string
	ThirdPersonName string

	StationName string
	TargetName  string
	GazeName    string

	Param     rig.Param
	Occlusion rig.Occlusion

	// Dirty asks the system to rebuild Param and swap it in on the next update.
	Dirty bool
	// Bound is cleared to make the system look the rig points up again.
	Bound bool
	// Source names whoever last changed the configuration.
	Source string
}

var CameraRigComponent = NewComponent[CameraRig]()
