package system

import (
	"log"

	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
	"github.com/HAAIL-Universe/tiltrunner/physics"
)

// PhysicsSystem steps the simulator, mirrors dynamic body state back into
// transforms, and evaluates the fall-out-of-bounds check.
type PhysicsSystem struct {
	sim physics.Simulator
	cfg *config.Tuning
}

func NewPhysicsSystem(sim physics.Simulator, cfg *config.Tuning) *PhysicsSystem {
	return &PhysicsSystem{sim: sim, cfg: cfg}
}

func (s *PhysicsSystem) Update(w *ecs.World, dt float64) {
	s.sim.Step(dt)
	s.syncTransforms(w)
	s.checkKill(w)
}

func (s *PhysicsSystem) syncTransforms(w *ecs.World) {
	entities := w.Query(component.RigidBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		rb, ok := ecs.Get(w, e, component.RigidBodyComponent)
		if !ok || rb.Body == nil || rb.Static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := rb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = rb.Body.Angle()
		if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
			panic("physics system: update transform: " + err.Error())
		}
	}
}

// checkKill ends the run when the ball falls past the kill threshold. The
// check is one-sided; there is no ceiling.
func (s *PhysicsSystem) checkKill(w *ecs.World) {
	runEntity, ok := w.First(component.RunStateComponent.Kind())
	if !ok {
		return
	}
	run, ok := ecs.Get(w, runEntity, component.RunStateComponent)
	if !ok || run.Phase != component.PhaseRunning {
		return
	}

	ballEntity, ok := w.First(component.BallComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, ballEntity, component.TransformComponent)
	if !ok {
		return
	}

	if t.Y <= run.KillY {
		return
	}

	run.Phase = component.PhaseEnded
	if run.Distance > run.Best {
		run.Best = run.Distance
	}
	if err := ecs.Add(w, runEntity, component.RunStateComponent, run); err != nil {
		panic("physics system: update run state: " + err.Error())
	}
	log.Printf("run ended: ball fell out of bounds at y=%.0f, distance=%.0f", t.Y, run.Distance)
}
