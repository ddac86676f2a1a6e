package component

// Director runs a script each frame that may rewrite the sibling CameraRig.
type Director struct {
	Script string
	// Every throttles the script to one run per Every updates. Zero runs it
	// every update.
	Every int
}

var DirectorComponent = NewComponent[Director]()
