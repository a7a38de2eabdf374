package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
)

// Overlay is the centered panel shown while no run is live: the start
// screen, the probing notice, and the game-over summary.
type Overlay struct {
	ui     *ebitenui.UI
	title  *widget.Text
	info   *widget.Text
	status *widget.Text
}

// NewOverlay builds the panel with colored nine-slices and the built-in
// basic font, so no theme assets need loading.
func NewOverlay(onStart func()) *Overlay {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 190})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x38, B: 0x44, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gray := color.NRGBA{R: 0xb8, G: 0xbe, B: 0xcc, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	title := widget.NewText(
		widget.TextOpts.Text("TILT RUNNER", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	info := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	status := widget.NewText(
		widget.TextOpts.Text("", &face, gray),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	startBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("Start", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onStart()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 36, Right: 36}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(420, 220),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(info)
	panel.AddChild(status)
	panel.AddChild(startBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &Overlay{
		ui:     &ebitenui.UI{Container: root},
		title:  title,
		info:   info,
		status: status,
	}
}

// Refresh updates the labels for the current phase before drawing.
func (o *Overlay) Refresh(run component.RunState, status string) {
	switch run.Phase {
	case component.PhaseEnded:
		o.title.Label = "GAME OVER"
		o.info.Label = fmt.Sprintf("distance %.0f    best %.0f", run.Distance, run.Best)
	case component.PhaseProbing:
		o.title.Label = "TILT RUNNER"
		o.info.Label = "checking for a tilt sensor..."
	default:
		o.title.Label = "TILT RUNNER"
		o.info.Label = "roll as far as you can"
	}

	if status != "" {
		o.status.Label = status
	} else {
		o.status.Label = "press Enter, or open the sensor page on a phone"
	}
}

func (o *Overlay) Update() {
	o.ui.Update()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.ui.Draw(screen)
}
