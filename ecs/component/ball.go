package component

// Ball marks the run's single dynamic body.
type Ball struct {
	Radius float64
}

var BallComponent = NewComponent[Ball]()
