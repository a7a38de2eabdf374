package physics

import "github.com/jakecoffman/cp/v2"

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBall
)

// Chipmunk runs the simulation on Chipmunk2D.
type Chipmunk struct {
	space  *cp.Space
	bodies map[*chipmunkBody]struct{}
}

// NewChipmunk creates a space with the given downward gravity.
func NewChipmunk(gravity float64) *Chipmunk {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &Chipmunk{
		space:  space,
		bodies: make(map[*chipmunkBody]struct{}),
	}
}

func (c *Chipmunk) NewBall(def BallDef) Body {
	mass := def.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := cp.MomentForCircle(mass, 0, def.Radius, cp.Vector{})
	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: def.X, Y: def.Y})

	shape := cp.NewCircle(body, def.Radius, cp.Vector{})
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)
	shape.SetCollisionType(collisionTypeBall)

	c.space.AddBody(body)
	c.space.AddShape(shape)

	cb := &chipmunkBody{space: c.space, body: body, shape: shape}
	c.bodies[cb] = struct{}{}
	return cb
}

func (c *Chipmunk) NewPlatform(def PlatformDef) Body {
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: def.X, Y: def.Y})

	shape := cp.NewBox(body, def.Length, def.Height, 0)
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)
	shape.SetCollisionType(collisionTypeSolid)

	c.space.AddBody(body)
	c.space.AddShape(shape)

	cb := &chipmunkBody{space: c.space, body: body, shape: shape, static: true}
	c.bodies[cb] = struct{}{}
	return cb
}

func (c *Chipmunk) Remove(b Body) {
	cb, ok := b.(*chipmunkBody)
	if !ok || cb == nil {
		return
	}
	if _, live := c.bodies[cb]; !live {
		return
	}
	c.space.RemoveShape(cb.shape)
	c.space.RemoveBody(cb.body)
	delete(c.bodies, cb)
}

func (c *Chipmunk) Step(dt float64) {
	if dt <= 0 {
		return
	}
	c.space.Step(dt)
}

func (c *Chipmunk) Clear() {
	for cb := range c.bodies {
		c.space.RemoveShape(cb.shape)
		c.space.RemoveBody(cb.body)
		delete(c.bodies, cb)
	}
}

type chipmunkBody struct {
	space  *cp.Space
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func (b *chipmunkBody) Position() Vec {
	p := b.body.Position()
	return Vec{X: p.X, Y: p.Y}
}

func (b *chipmunkBody) SetPosition(v Vec) {
	b.body.SetPosition(cp.Vector{X: v.X, Y: v.Y})
	if b.static {
		b.space.ReindexShape(b.shape)
	}
}

func (b *chipmunkBody) Angle() float64 {
	return b.body.Angle()
}

// SetAngle re-orients the body. Static shapes are reindexed immediately so
// the very next Step resolves contacts against the new orientation.
func (b *chipmunkBody) SetAngle(a float64) {
	b.body.SetAngle(a)
	if b.static {
		b.space.ReindexShape(b.shape)
	}
}

func (b *chipmunkBody) Velocity() Vec {
	v := b.body.Velocity()
	return Vec{X: v.X, Y: v.Y}
}

func (b *chipmunkBody) SetVelocity(v Vec) {
	b.body.SetVelocity(v.X, v.Y)
}
