package system

import (
	"github.com/HAAIL-Universe/tiltrunner/common"
	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
)

// PlatformAngleSystem drives the shared platform angle toward its target
// with first-order lag and writes the result onto every live platform body.
// Platforms rotate in rigid lockstep; none is ever rotated individually.
// This runs before the physics step each frame because the engine treats
// static-body orientation as authoritative input for contact resolution.
type PlatformAngleSystem struct {
	cfg *config.Tuning
}

func NewPlatformAngleSystem(cfg *config.Tuning) *PlatformAngleSystem {
	return &PlatformAngleSystem{cfg: cfg}
}

func (s *PlatformAngleSystem) Update(w *ecs.World, dt float64) {
	e, ok := w.First(component.TiltControlComponent.Kind())
	if !ok {
		return
	}
	tc, ok := ecs.Get(w, e, component.TiltControlComponent)
	if !ok {
		return
	}

	tc.Current = common.StepToward(tc.Current, tc.Target, s.cfg.AngleStiffness, dt)
	if err := ecs.Add(w, e, component.TiltControlComponent, tc); err != nil {
		panic("platform angle system: update tilt control: " + err.Error())
	}

	platforms := w.Query(
		component.PlatformComponent.Kind(),
		component.RigidBodyComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, p := range platforms {
		rb, ok := ecs.Get(w, p, component.RigidBodyComponent)
		if !ok || rb.Body == nil {
			continue
		}
		rb.Body.SetAngle(tc.Current)

		t, ok := ecs.Get(w, p, component.TransformComponent)
		if !ok {
			continue
		}
		t.Rotation = tc.Current
		if err := ecs.Add(w, p, component.TransformComponent, t); err != nil {
			panic("platform angle system: update transform: " + err.Error())
		}
	}
}
