package system

import (
	"github.com/HAAIL-Universe/tiltrunner/common"
	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
)

// CameraSystem follows the ball horizontally with a lead offset, smoothed by
// the same capped first-order lag as the platform angle. The camera never
// jumps mid-run; the only snap is the reset, which writes Camera.X directly.
type CameraSystem struct {
	cfg *config.Tuning
}

func NewCameraSystem(cfg *config.Tuning) *CameraSystem {
	return &CameraSystem{cfg: cfg}
}

func (s *CameraSystem) Update(w *ecs.World, dt float64) {
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	ballEntity, ok := w.First(component.BallComponent.Kind(), component.TransformComponent.Kind())
	if !ok {
		return
	}

	cam, ok := ecs.Get(w, camEntity, component.CameraComponent)
	if !ok {
		return
	}
	ballT, ok := ecs.Get(w, ballEntity, component.TransformComponent)
	if !ok {
		return
	}

	desired := DesiredCameraX(ballT.X, s.cfg)
	cam.X = common.StepToward(cam.X, desired, s.cfg.CameraStiffness, dt)
	if err := ecs.Add(w, camEntity, component.CameraComponent, cam); err != nil {
		panic("camera system: update camera: " + err.Error())
	}
}

// DesiredCameraX is the follow target: the ball kept leadRatio screens in
// from the camera's left edge. The world is unbounded to the right, so there
// is no clamping.
func DesiredCameraX(ballX float64, cfg *config.Tuning) float64 {
	return ballX - cfg.CameraLeadRatio*cfg.ScreenWidth
}
