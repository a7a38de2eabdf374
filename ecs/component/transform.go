package component

// Transform is an entity's position and rotation in world coordinates.
type Transform struct {
	X, Y     float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
