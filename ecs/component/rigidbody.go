package component

import "github.com/HAAIL-Universe/tiltrunner/physics"

// RigidBody ties an entity to its body in the simulator.
type RigidBody struct {
	Body   physics.Body
	Static bool
}

var RigidBodyComponent = NewComponent[RigidBody]()
