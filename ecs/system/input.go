package system

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/HAAIL-Universe/tiltrunner/common"
	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
	"github.com/HAAIL-Universe/tiltrunner/tilt"
)

// TiltSource hands out the newest device-orientation sample. Both
// *tilt.Bridge and *tilt.Cell satisfy it.
type TiltSource interface {
	Latest() (tilt.Sample, bool)
}

// InputSystem conditions raw input into the target platform angle: sensor
// gamma clamped and mapped proportionally in tilt mode, full-deflection
// left/right in keyboard mode. The two modes never blend; whichever the run
// started with is the only one read.
type InputSystem struct {
	source TiltSource
	cfg    *config.Tuning

	// pollKeys is swappable so the keyboard path is testable headless.
	pollKeys func() (left, right bool)
}

func NewInputSystem(source TiltSource, cfg *config.Tuning) *InputSystem {
	return &InputSystem{source: source, cfg: cfg, pollKeys: pollKeyboard}
}

func (s *InputSystem) Update(w *ecs.World, _ float64) {
	e, ok := w.First(component.TiltControlComponent.Kind())
	if !ok {
		return
	}
	tc, ok := ecs.Get(w, e, component.TiltControlComponent)
	if !ok {
		return
	}

	maxAngle := s.cfg.MaxPlatformAngle()
	switch tc.Mode {
	case component.ModeTilt:
		// The sensor pushes at its own rate; read whatever is cached and
		// accept staleness up to one event interval. No sample yet means
		// gamma zero.
		if sample, ok := s.source.Latest(); ok {
			tc.RawGamma = sample.Gamma
		}
		tc.Target = conditionGamma(tc.RawGamma, s.cfg.MaxTiltDeg, maxAngle)
	default:
		left, right := s.pollKeys()
		tc.Target = conditionKeys(left, right, maxAngle)
	}

	if err := ecs.Add(w, e, component.TiltControlComponent, tc); err != nil {
		panic("input system: update tilt control: " + err.Error())
	}
}

// conditionGamma clamps raw gamma degrees to ±maxTiltDeg and maps the result
// linearly onto ±maxAngle radians, preserving sign.
func conditionGamma(gamma, maxTiltDeg, maxAngle float64) float64 {
	clamped := common.Clamp(gamma, -maxTiltDeg, maxTiltDeg)
	return clamped / maxTiltDeg * maxAngle
}

// conditionKeys maps held keys to full deflection; both or neither cancel
// to zero.
func conditionKeys(left, right bool, maxAngle float64) float64 {
	switch {
	case left && !right:
		return -maxAngle
	case right && !left:
		return maxAngle
	default:
		return 0
	}
}

func pollKeyboard() (bool, bool) {
	left := ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
	right := ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD)
	return left, right
}
