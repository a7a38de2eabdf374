package system

import (
	"math/rand"

	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
	"github.com/HAAIL-Universe/tiltrunner/physics"
)

// StreamSystem maintains the infinite platform strip: it spawns ahead of the
// camera until at least two screens of coverage exist past it, and culls
// platforms two screens behind it. Live platform count stays O(screens)
// regardless of how far the run goes.
//
// platforms is ordered by x: spawn appends at the frontier, cull pops from
// the front.
type StreamSystem struct {
	sim physics.Simulator
	cfg *config.Tuning
	rng *rand.Rand

	frontier  float64
	platforms []ecs.Entity
}

func NewStreamSystem(sim physics.Simulator, cfg *config.Tuning, seed int64) *StreamSystem {
	return &StreamSystem{
		sim: sim,
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Frontier is the right edge of the most recently spawned platform.
func (s *StreamSystem) Frontier() float64 {
	return s.frontier
}

// Platforms returns the live platforms in spawn (left-to-right) order.
func (s *StreamSystem) Platforms() []ecs.Entity {
	return s.platforms
}

// Reset discards all live platforms and seeds the initial batch: a fixed
// count of platforms, the first with zero gap so the ball at startX stands
// on solid ground from the first frame.
func (s *StreamSystem) Reset(w *ecs.World, startX float64) {
	for _, e := range s.platforms {
		s.removePlatform(w, e)
	}
	s.platforms = s.platforms[:0]

	s.frontier = startX - s.cfg.PlatformLength/2
	s.spawnPlatform(w, 0)
	for i := 1; i < s.cfg.InitialPlatformCount; i++ {
		s.spawnPlatform(w, s.randomGap())
	}
}

// Update runs the per-frame streaming policy: spawn ahead, then cull behind.
// Must run after the camera has moved for the frame.
func (s *StreamSystem) Update(w *ecs.World, _ float64) {
	camX, ok := cameraX(w)
	if !ok {
		return
	}
	s.maybeSpawnPlatforms(w, camX)
	s.cullOldPlatforms(w, camX)
}

// maybeSpawnPlatforms tops the strip up to two screens past the camera. The
// loop re-checks the frontier after every spawn, so it produces exactly what
// is needed and never bursts ahead.
func (s *StreamSystem) maybeSpawnPlatforms(w *ecs.World, camX float64) {
	for s.frontier < camX+2*s.cfg.ScreenWidth {
		s.spawnPlatform(w, s.randomGap())
	}
}

// cullOldPlatforms drops every platform whose right edge is more than two
// screens behind the camera. The slice is x-ordered, so survivors keep
// their relative order.
func (s *StreamSystem) cullOldPlatforms(w *ecs.World, camX float64) {
	limit := camX - 2*s.cfg.ScreenWidth
	for len(s.platforms) > 0 {
		e := s.platforms[0]
		t, okT := ecs.Get(w, e, component.TransformComponent)
		p, okP := ecs.Get(w, e, component.PlatformComponent)
		if okT && okP && p.RightEdge(t.X) >= limit {
			break
		}
		s.removePlatform(w, e)
		s.platforms = s.platforms[1:]
	}
}

// spawnPlatform creates one static platform at frontier + gap, with vertical
// variation around the base line, already rotated to the current shared
// angle, and advances the frontier to its right edge.
func (s *StreamSystem) spawnPlatform(w *ecs.World, gap float64) {
	length := s.cfg.PlatformLength
	height := s.cfg.PlatformHeight
	centerX := s.frontier + gap + length/2
	centerY := s.cfg.PlatformBaseY + (s.rng.Float64()*2-1)*s.cfg.PlatformYVariation

	body := s.sim.NewPlatform(physics.PlatformDef{
		X:          centerX,
		Y:          centerY,
		Length:     length,
		Height:     height,
		Friction:   s.cfg.PlatformFriction,
		Elasticity: s.cfg.PlatformElasticity,
	})

	angle := currentAngle(w)
	body.SetAngle(angle)

	e := w.CreateEntity()
	mustAdd(ecs.Add(w, e, component.TransformComponent, component.Transform{X: centerX, Y: centerY, Rotation: angle}))
	mustAdd(ecs.Add(w, e, component.PlatformComponent, component.Platform{Length: length, Height: height}))
	mustAdd(ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{Body: body, Static: true}))

	s.platforms = append(s.platforms, e)
	s.frontier = centerX + length/2
}

func (s *StreamSystem) removePlatform(w *ecs.World, e ecs.Entity) {
	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent); ok && rb.Body != nil {
		s.sim.Remove(rb.Body)
	}
	w.DestroyEntity(e)
}

func (s *StreamSystem) randomGap() float64 {
	return s.cfg.GapMin + s.rng.Float64()*(s.cfg.GapMax-s.cfg.GapMin)
}

func cameraX(w *ecs.World) (float64, bool) {
	e, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return 0, false
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent)
	if !ok {
		return 0, false
	}
	return cam.X, true
}

func currentAngle(w *ecs.World) float64 {
	e, ok := w.First(component.TiltControlComponent.Kind())
	if !ok {
		return 0
	}
	tc, ok := ecs.Get(w, e, component.TiltControlComponent)
	if !ok {
		return 0
	}
	return tc.Current
}

func mustAdd(err error) {
	if err != nil {
		panic("stream system: add component: " + err.Error())
	}
}
