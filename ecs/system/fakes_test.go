package system

import (
	"testing"

	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
	"github.com/HAAIL-Universe/tiltrunner/physics"
)

// fakeBody is a deterministic physics.Body for tests.
type fakeBody struct {
	pos    physics.Vec
	vel    physics.Vec
	angle  float64
	static bool
}

func (b *fakeBody) Position() physics.Vec     { return b.pos }
func (b *fakeBody) SetPosition(v physics.Vec) { b.pos = v }
func (b *fakeBody) Angle() float64            { return b.angle }
func (b *fakeBody) SetAngle(a float64)        { b.angle = a }
func (b *fakeBody) Velocity() physics.Vec     { return b.vel }
func (b *fakeBody) SetVelocity(v physics.Vec) { b.vel = v }

// fakeSim integrates velocity only; tests steer bodies by setting position
// or velocity directly.
type fakeSim struct {
	live    map[*fakeBody]struct{}
	stepped float64
}

func newFakeSim() *fakeSim {
	return &fakeSim{live: make(map[*fakeBody]struct{})}
}

func (s *fakeSim) NewBall(def physics.BallDef) physics.Body {
	b := &fakeBody{pos: physics.Vec{X: def.X, Y: def.Y}}
	s.live[b] = struct{}{}
	return b
}

func (s *fakeSim) NewPlatform(def physics.PlatformDef) physics.Body {
	b := &fakeBody{pos: physics.Vec{X: def.X, Y: def.Y}, static: true}
	s.live[b] = struct{}{}
	return b
}

func (s *fakeSim) Remove(b physics.Body) {
	if fb, ok := b.(*fakeBody); ok {
		delete(s.live, fb)
	}
}

func (s *fakeSim) Step(dt float64) {
	s.stepped += dt
	for b := range s.live {
		if b.static {
			continue
		}
		b.pos.X += b.vel.X * dt
		b.pos.Y += b.vel.Y * dt
	}
}

func (s *fakeSim) Clear() {
	s.live = make(map[*fakeBody]struct{})
}

func (s *fakeSim) liveCount() int { return len(s.live) }

func (s *fakeSim) livePlatformCount() int {
	n := 0
	for b := range s.live {
		if b.static {
			n++
		}
	}
	return n
}

// testWorld builds the entity set a run starts with, minus platforms (the
// stream system owns those).
type testWorld struct {
	w    *ecs.World
	run  ecs.Entity
	cam  ecs.Entity
	ball ecs.Entity

	ballBody *fakeBody
}

func startX(cfg *config.Tuning) float64 {
	return -cfg.PlatformLength / 2
}

func buildWorld(t *testing.T, sim *fakeSim, cfg *config.Tuning, mode component.ControlMode) *testWorld {
	t.Helper()

	w := ecs.NewWorld()
	sx := startX(cfg)

	run := w.CreateEntity()
	if err := ecs.Add(w, run, component.RunStateComponent, component.RunState{
		Phase:  component.PhaseRunning,
		StartX: sx,
		KillY:  cfg.ScreenHeight * cfg.KillYMultiplier,
	}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, run, component.TiltControlComponent, component.TiltControl{Mode: mode}); err != nil {
		t.Fatal(err)
	}

	cam := w.CreateEntity()
	if err := ecs.Add(w, cam, component.CameraComponent, component.Camera{
		X: DesiredCameraX(sx, cfg),
	}); err != nil {
		t.Fatal(err)
	}

	ballY := cfg.PlatformBaseY - cfg.PlatformHeight/2 - cfg.BallRadius
	body := sim.NewBall(physics.BallDef{X: sx, Y: ballY, Radius: cfg.BallRadius, Mass: cfg.BallMass}).(*fakeBody)

	ball := w.CreateEntity()
	if err := ecs.Add(w, ball, component.BallComponent, component.Ball{Radius: cfg.BallRadius}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, ball, component.TransformComponent, component.Transform{X: sx, Y: ballY}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, ball, component.RigidBodyComponent, component.RigidBody{Body: body}); err != nil {
		t.Fatal(err)
	}

	return &testWorld{w: w, run: run, cam: cam, ball: ball, ballBody: body}
}

func (tw *testWorld) runState(t *testing.T) component.RunState {
	t.Helper()
	run, ok := ecs.Get(tw.w, tw.run, component.RunStateComponent)
	if !ok {
		t.Fatal("run state missing")
	}
	return run
}

func (tw *testWorld) tiltControl(t *testing.T) component.TiltControl {
	t.Helper()
	tc, ok := ecs.Get(tw.w, tw.run, component.TiltControlComponent)
	if !ok {
		t.Fatal("tilt control missing")
	}
	return tc
}

func (tw *testWorld) setTiltControl(t *testing.T, tc component.TiltControl) {
	t.Helper()
	if err := ecs.Add(tw.w, tw.run, component.TiltControlComponent, tc); err != nil {
		t.Fatal(err)
	}
}

func (tw *testWorld) cameraX(t *testing.T) float64 {
	t.Helper()
	cam, ok := ecs.Get(tw.w, tw.cam, component.CameraComponent)
	if !ok {
		t.Fatal("camera missing")
	}
	return cam.X
}

func (tw *testWorld) setCameraX(t *testing.T, x float64) {
	t.Helper()
	if err := ecs.Add(tw.w, tw.cam, component.CameraComponent, component.Camera{X: x}); err != nil {
		t.Fatal(err)
	}
}

func (tw *testWorld) ballTransform(t *testing.T) component.Transform {
	t.Helper()
	tr, ok := ecs.Get(tw.w, tw.ball, component.TransformComponent)
	if !ok {
		t.Fatal("ball transform missing")
	}
	return tr
}
