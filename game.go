package main

import (
	"context"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
	"github.com/HAAIL-Universe/tiltrunner/ecs/system"
	"github.com/HAAIL-Universe/tiltrunner/physics"
	"github.com/HAAIL-Universe/tiltrunner/tilt"
)

// probeTimeout bounds how long a run start waits for the first sensor sample
// before falling back to keyboard.
const probeTimeout = 500 * time.Millisecond

// Game drives the fixed per-frame order: condition input, smooth the
// platform angle, step physics (with the kill check), follow with the
// camera, score distance, then stream platforms. Rendering happens in Draw.
type Game struct {
	cfg     *config.Tuning
	cfgPath string
	watcher *config.Watcher

	world  *ecs.World
	sim    physics.Simulator
	bridge *tilt.Bridge

	stream   *system.StreamSystem
	renderer *system.RenderSystem
	systems  []ecs.System

	runEntity ecs.Entity

	overlay *Overlay
	status  string

	probeCh        chan tilt.ProbeResult
	startRequested bool
	paused         bool

	last               time.Time
	outsideW, outsideH int

	debug bool
}

func NewGame(cfg *config.Tuning, cfgPath string, watcher *config.Watcher, bridge *tilt.Bridge, seed int64, debug bool) *Game {
	sim := physics.NewChipmunk(cfg.Gravity)

	var source system.TiltSource = &tilt.Cell{}
	if bridge != nil {
		source = bridge
	}

	stream := system.NewStreamSystem(sim, cfg, seed)
	g := &Game{
		cfg:      cfg,
		cfgPath:  cfgPath,
		watcher:  watcher,
		sim:      sim,
		bridge:   bridge,
		stream:   stream,
		renderer: system.NewRenderSystem(),
		systems: []ecs.System{
			system.NewInputSystem(source, cfg),
			system.NewPlatformAngleSystem(cfg),
			system.NewPhysicsSystem(sim, cfg),
			system.NewCameraSystem(cfg),
			system.NewDistanceSystem(),
			stream,
		},
		debug: debug,
	}
	g.overlay = NewOverlay(func() { g.startRequested = true })

	// Build an idle world so there is something behind the start overlay.
	g.resetWorld(component.ModeKeyboard)
	return g
}

func (g *Game) Update() error {
	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	dt := now.Sub(g.last).Seconds()
	g.last = now
	if dt > g.cfg.MaxFrameDelta {
		dt = g.cfg.MaxFrameDelta
	}

	g.pollTuningReload()

	switch g.runState().Phase {
	case component.PhaseRunning:
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.paused = !g.paused
		}
		if g.paused {
			return nil
		}
		for _, s := range g.systems {
			s.Update(g.world, dt)
		}
	case component.PhaseProbing:
		select {
		case res := <-g.probeCh:
			g.beginRun(res)
		default:
			// Probe still in flight; nothing steps this frame.
		}
	default: // idle or ended
		g.overlay.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.startRequested = true
		}
		if g.startRequested {
			g.startRequested = false
			g.requestStart()
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	g.drawHUD(screen)

	run := g.runState()
	if run.Phase != component.PhaseRunning {
		g.overlay.Refresh(run, g.status)
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outsideW = outsideWidth
	g.outsideH = outsideHeight
	return int(g.cfg.ScreenWidth), int(g.cfg.ScreenHeight)
}

// requestStart begins the pre-run capability handshake. Starting in portrait
// is refused outright: no state changes, the overlay prompts to rotate.
func (g *Game) requestStart() {
	if g.outsideW > 0 && g.outsideH > g.outsideW {
		g.status = "rotate the device to landscape to play"
		return
	}

	g.setPhase(component.PhaseProbing)
	g.probeCh = make(chan tilt.ProbeResult, 1)
	bridge := g.bridge
	go func(ch chan tilt.ProbeResult) {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		ch <- bridge.Probe(ctx)
	}(g.probeCh)
}

// beginRun resolves the probe into a control mode and starts a fresh run.
// Keyboard is a fully supported mode, not an error path.
func (g *Game) beginRun(res tilt.ProbeResult) {
	mode := component.ModeKeyboard
	if res.Tilt {
		mode = component.ModeTilt
		g.status = "tilt mode"
	} else {
		g.status = "keyboard mode: " + res.Reason
	}
	log.Printf("run starting in %s mode", mode)

	g.resetWorld(mode)
	g.setPhase(component.PhaseRunning)
	g.paused = false
	g.last = time.Now()
}

// resetWorld discards the previous run wholesale: every body leaves the
// simulator, a fresh entity world is built, the camera snaps to its desired
// position, and the streamer seeds the initial platform batch.
func (g *Game) resetWorld(mode component.ControlMode) {
	best := 0.0
	if g.world != nil {
		if run, ok := ecs.Get(g.world, g.runEntity, component.RunStateComponent); ok {
			best = run.Best
		}
	}

	g.sim.Clear()
	g.world = ecs.NewWorld()

	sx := -g.cfg.PlatformLength / 2

	run := g.world.CreateEntity()
	mustAdd(ecs.Add(g.world, run, component.RunStateComponent, component.RunState{
		Phase:  component.PhaseIdle,
		StartX: sx,
		Best:   best,
		KillY:  g.cfg.ScreenHeight * g.cfg.KillYMultiplier,
	}))
	mustAdd(ecs.Add(g.world, run, component.TiltControlComponent, component.TiltControl{Mode: mode}))
	g.runEntity = run

	cam := g.world.CreateEntity()
	mustAdd(ecs.Add(g.world, cam, component.CameraComponent, component.Camera{
		X: system.DesiredCameraX(sx, g.cfg),
	}))

	ballY := g.cfg.PlatformBaseY - g.cfg.PlatformHeight/2 - g.cfg.BallRadius
	body := g.sim.NewBall(physics.BallDef{
		X:          sx,
		Y:          ballY,
		Radius:     g.cfg.BallRadius,
		Mass:       g.cfg.BallMass,
		Friction:   g.cfg.BallFriction,
		Elasticity: g.cfg.BallElasticity,
	})

	ball := g.world.CreateEntity()
	mustAdd(ecs.Add(g.world, ball, component.BallComponent, component.Ball{Radius: g.cfg.BallRadius}))
	mustAdd(ecs.Add(g.world, ball, component.TransformComponent, component.Transform{X: sx, Y: ballY}))
	mustAdd(ecs.Add(g.world, ball, component.RigidBodyComponent, component.RigidBody{Body: body}))

	g.stream.Reset(g.world, sx)
}

func (g *Game) runState() component.RunState {
	run, ok := ecs.Get(g.world, g.runEntity, component.RunStateComponent)
	if !ok {
		return component.RunState{}
	}
	return run
}

func (g *Game) tiltControl() component.TiltControl {
	tc, ok := ecs.Get(g.world, g.runEntity, component.TiltControlComponent)
	if !ok {
		return component.TiltControl{}
	}
	return tc
}

func (g *Game) setPhase(p component.Phase) {
	run := g.runState()
	run.Phase = p
	mustAdd(ecs.Add(g.world, g.runEntity, component.RunStateComponent, run))
}

// pollTuningReload applies a changed tuning file between frames. Knob
// changes apply immediately; geometry changes fully take effect on the next
// reset.
func (g *Game) pollTuningReload() {
	if g.watcher == nil {
		return
	}
	select {
	case _, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		fresh, err := config.Load(g.cfgPath)
		if err != nil {
			log.Printf("config: reload failed, keeping previous tuning: %v", err)
			return
		}
		*g.cfg = fresh
		log.Printf("config: reloaded %s", g.cfgPath)
	case err, ok := <-g.watcher.Errors:
		if !ok {
			g.watcher = nil
			return
		}
		log.Printf("config: watcher error: %v", err)
	default:
	}
}

func mustAdd(err error) {
	if err != nil {
		panic("game: add component: " + err.Error())
	}
}
