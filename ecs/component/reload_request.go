package component

// ReloadRequest is a marker entity asking the camera rig system to re-read a
// camera rig prefab and swap it into every rig. The hot reload watcher
// creates one per changed file; the system destroys it once handled.
type ReloadRequest struct {
	Prefab string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
