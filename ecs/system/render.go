package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
)

var (
	skyColor      = color.NRGBA{R: 0x18, G: 0x1c, B: 0x2b, A: 0xff}
	platformColor = color.NRGBA{R: 0x8a, G: 0x93, B: 0xa6, A: 0xff}
	ballColor     = color.NRGBA{R: 0xf2, G: 0x94, B: 0x2c, A: 0xff}
)

// RenderSystem draws the world camera-relative: platforms as rotated boxes,
// the ball as a filled circle.
type RenderSystem struct {
	pixel *ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{pixel: pixel}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(skyColor)

	camX, _ := cameraX(w)

	platforms := w.Query(component.PlatformComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range platforms {
		t, okT := ecs.Get(w, e, component.TransformComponent)
		p, okP := ecs.Get(w, e, component.PlatformComponent)
		if !okT || !okP {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.Length, p.Height)
		op.GeoM.Translate(-p.Length/2, -p.Height/2)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Translate(t.X-camX, t.Y)
		op.ColorScale.ScaleWithColor(platformColor)
		screen.DrawImage(r.pixel, op)
	}

	if ballEntity, ok := w.First(component.BallComponent.Kind(), component.TransformComponent.Kind()); ok {
		t, okT := ecs.Get(w, ballEntity, component.TransformComponent)
		b, okB := ecs.Get(w, ballEntity, component.BallComponent)
		if okT && okB {
			vector.DrawFilledCircle(screen, float32(t.X-camX), float32(t.Y), float32(b.Radius), ballColor, true)
		}
	}
}
