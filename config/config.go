package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant. Values load from defaults, then an
// optional YAML file layered on top, so a file only needs to name the knobs
// it changes.
type Tuning struct {
	ScreenWidth  float64 `yaml:"screen_width"`
	ScreenHeight float64 `yaml:"screen_height"`

	Gravity float64 `yaml:"gravity"`

	BallRadius     float64 `yaml:"ball_radius"`
	BallMass       float64 `yaml:"ball_mass"`
	BallFriction   float64 `yaml:"ball_friction"`
	BallElasticity float64 `yaml:"ball_elasticity"`

	PlatformLength     float64 `yaml:"platform_length"`
	PlatformHeight     float64 `yaml:"platform_height"`
	PlatformFriction   float64 `yaml:"platform_friction"`
	PlatformElasticity float64 `yaml:"platform_elasticity"`
	PlatformBaseY      float64 `yaml:"platform_base_y"`
	PlatformYVariation float64 `yaml:"platform_y_variation"`

	GapMin               float64 `yaml:"gap_min"`
	GapMax               float64 `yaml:"gap_max"`
	InitialPlatformCount int     `yaml:"initial_platform_count"`

	MaxTiltDeg          float64 `yaml:"max_tilt_deg"`
	MaxPlatformAngleDeg float64 `yaml:"max_platform_angle_deg"`
	AngleStiffness      float64 `yaml:"angle_stiffness"`

	CameraStiffness float64 `yaml:"camera_stiffness"`
	CameraLeadRatio float64 `yaml:"camera_lead_ratio"`

	KillYMultiplier float64 `yaml:"kill_y_multiplier"`

	// MaxFrameDelta caps the per-frame dt (seconds) handed to the physics
	// step, so a backgrounded window doesn't tunnel the ball on resume.
	MaxFrameDelta float64 `yaml:"max_frame_delta"`
}

// Default returns the shipped tuning.
func Default() Tuning {
	return Tuning{
		ScreenWidth:  1280,
		ScreenHeight: 720,

		Gravity: 1400,

		BallRadius:     18,
		BallMass:       1,
		BallFriction:   0.7,
		BallElasticity: 0.35,

		PlatformLength:     260,
		PlatformHeight:     22,
		PlatformFriction:   0.8,
		PlatformElasticity: 0.1,
		PlatformBaseY:      520,
		PlatformYVariation: 60,

		GapMin:               80,
		GapMax:               140,
		InitialPlatformCount: 10,

		MaxTiltDeg:          25,
		MaxPlatformAngleDeg: 36,
		AngleStiffness:      8,

		CameraStiffness: 6,
		CameraLeadRatio: 0.3,

		KillYMultiplier: 2.0,

		MaxFrameDelta: 0.1,
	}
}

// Load reads path and layers it over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("config: %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects tunings the streamer or controller can't run on.
func (t Tuning) Validate() error {
	switch {
	case t.ScreenWidth <= 0 || t.ScreenHeight <= 0:
		return fmt.Errorf("screen dimensions must be positive, got %gx%g", t.ScreenWidth, t.ScreenHeight)
	case t.BallRadius <= 0:
		return fmt.Errorf("ball_radius must be positive, got %g", t.BallRadius)
	case t.PlatformLength <= 0 || t.PlatformHeight <= 0:
		return fmt.Errorf("platform dimensions must be positive, got %gx%g", t.PlatformLength, t.PlatformHeight)
	case t.GapMin < 0:
		return fmt.Errorf("gap_min must be non-negative, got %g", t.GapMin)
	case t.GapMax < t.GapMin:
		return fmt.Errorf("gap_max %g is below gap_min %g", t.GapMax, t.GapMin)
	case t.InitialPlatformCount < 1:
		return fmt.Errorf("initial_platform_count must be at least 1, got %d", t.InitialPlatformCount)
	case t.MaxTiltDeg <= 0:
		return fmt.Errorf("max_tilt_deg must be positive, got %g", t.MaxTiltDeg)
	case t.MaxPlatformAngleDeg <= 0 || t.MaxPlatformAngleDeg >= 90:
		return fmt.Errorf("max_platform_angle_deg must be in (0, 90), got %g", t.MaxPlatformAngleDeg)
	case t.AngleStiffness <= 0 || t.CameraStiffness <= 0:
		return fmt.Errorf("stiffness values must be positive, got angle=%g camera=%g", t.AngleStiffness, t.CameraStiffness)
	case t.CameraLeadRatio < 0 || t.CameraLeadRatio > 1:
		return fmt.Errorf("camera_lead_ratio must be in [0, 1], got %g", t.CameraLeadRatio)
	case t.KillYMultiplier <= 0:
		return fmt.Errorf("kill_y_multiplier must be positive, got %g", t.KillYMultiplier)
	case t.MaxFrameDelta <= 0:
		return fmt.Errorf("max_frame_delta must be positive, got %g", t.MaxFrameDelta)
	}
	return nil
}

// MaxPlatformAngle returns the configured platform angle limit in radians.
func (t Tuning) MaxPlatformAngle() float64 {
	return t.MaxPlatformAngleDeg * math.Pi / 180
}
