package component

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// RigPointTag marks the transforms a camera rig can sit on.
type RigPointTag struct{}

var RigPointTagComponent = NewComponent[RigPointTag]()
