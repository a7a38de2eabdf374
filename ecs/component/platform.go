package component

// Platform marks a streamed platform and carries its unrotated extent,
// used for cull bounds and rendering.
type Platform struct {
	Length float64
	Height float64
}

var PlatformComponent = NewComponent[Platform]()

// LeftEdge and RightEdge are the platform's unrotated x extent around center.
func (p Platform) LeftEdge(centerX float64) float64  { return centerX - p.Length/2 }
func (p Platform) RightEdge(centerX float64) float64 { return centerX + p.Length/2 }
