package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func (g *Game) drawHUD(screen *ebiten.Image) {
	run := g.runState()
	tc := g.tiltControl()

	score := fmt.Sprintf("distance %5.0f    best %5.0f", run.Distance, run.Best)
	drawHUDLine(screen, score, 16, 16)

	angleDeg := tc.Current * 180 / math.Pi
	var input string
	if tc.Mode == component.ModeTilt {
		input = fmt.Sprintf("tilt %+5.1f deg    platforms %+5.1f deg", tc.RawGamma, angleDeg)
	} else {
		input = fmt.Sprintf("keyboard (arrows / A,D)    platforms %+5.1f deg", angleDeg)
	}
	drawHUDLine(screen, input, 16, 34)

	if g.paused {
		drawHUDLine(screen, "paused (P resumes)", 16, 52)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f  TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
			16, int(g.cfg.ScreenHeight)-24)
	}
}

func drawHUDLine(screen *ebiten.Image, msg string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.NRGBA{R: 0xe8, G: 0xea, B: 0xf0, A: 0xff})
	ebtext.Draw(screen, msg, hudFace, op)
}
