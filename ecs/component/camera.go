package component

// Camera is the horizontal world offset subtracted from world x at render
// time. Mutated once per frame by the camera system; only the world reset
// writes it directly.
type Camera struct {
	X float64
}

var CameraComponent = NewComponent[Camera]()
