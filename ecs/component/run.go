package component

// Phase is the run lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseProbing
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseProbing:
		return "probing"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "idle"
	}
}

// RunState owns scoring and the fail condition for the current run.
type RunState struct {
	Phase Phase

	// StartX is the ball's spawn x; distance is measured from it.
	StartX float64

	// Distance is a high-water mark: the farthest the ball has ever been
	// past StartX this run. It never regresses when the ball bounces back.
	Distance float64

	// Best is the best distance across runs this session.
	Best float64

	// KillY is the y threshold below which the ball is out of the world.
	KillY float64
}

var RunStateComponent = NewComponent[RunState]()
