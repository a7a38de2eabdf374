package component

// ControlMode selects the input scheme for a run. The mode is fixed at run
// start; tilt and keyboard are never blended.
type ControlMode int

const (
	ModeKeyboard ControlMode = iota
	ModeTilt
)

func (m ControlMode) String() string {
	if m == ModeTilt {
		return "tilt"
	}
	return "keyboard"
}

// TiltControl is the shared platform angle state: the conditioned target and
// the smoothed current angle applied to every platform body in lockstep.
type TiltControl struct {
	Mode ControlMode

	// RawGamma is the latest sensor reading in degrees, only meaningful in
	// tilt mode.
	RawGamma float64

	Target  float64 // radians, clamped to ±max platform angle
	Current float64 // radians, converges toward Target
}

var TiltControlComponent = NewComponent[TiltControl]()
