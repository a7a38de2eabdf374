package system

import (
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
)

// DistanceSystem updates the score while the run is live. Distance is a
// high-water mark of the ball's x past its start, so a bounce backward never
// makes the displayed score shrink. Once the run ends the score freezes.
type DistanceSystem struct{}

func NewDistanceSystem() *DistanceSystem {
	return &DistanceSystem{}
}

func (s *DistanceSystem) Update(w *ecs.World, _ float64) {
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

	if d := t.X - run.StartX; d > run.Distance {
		run.Distance = d
		if err := ecs.Add(w, runEntity, component.RunStateComponent, run); err != nil {
			panic("distance system: update run state: " + err.Error())
		}
	}
}
