// Package physics is the boundary to the rigid-body engine. Game logic only
// sees the Simulator and Body capabilities below, so every system above it
// can run against a deterministic double in tests while production wires in
// Chipmunk2D.
package physics

// Vec is a 2D vector in world coordinates (y grows downward, matching the
// render surface).
type Vec struct {
	X, Y float64
}

// Body is a live rigid body inside a Simulator.
type Body interface {
	Position() Vec
	SetPosition(Vec)
	Angle() float64
	SetAngle(float64)
	Velocity() Vec
	SetVelocity(Vec)
}

// BallDef describes the single dynamic body of a run.
type BallDef struct {
	X, Y       float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
}

// PlatformDef describes one static platform, positioned by its center.
// Platforms rotate about their own center via Body.SetAngle.
type PlatformDef struct {
	X, Y       float64
	Length     float64
	Height     float64
	Friction   float64
	Elasticity float64
}

// Simulator is the minimal surface the game needs from a physics engine.
type Simulator interface {
	NewBall(BallDef) Body
	NewPlatform(PlatformDef) Body
	Remove(Body)
	// Step advances the simulation by dt seconds.
	Step(dt float64)
	// Clear removes every body, returning the world to its empty state.
	Clear()
}
