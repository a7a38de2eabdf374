package system

import (
	"testing"

	"github.com/HAAIL-Universe/tiltrunner/config"
	"github.com/HAAIL-Universe/tiltrunner/ecs"
	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
)

func streamConfig() config.Tuning {
	cfg := config.Default()
	cfg.ScreenWidth = 800
	cfg.PlatformLength = 260
	cfg.GapMin = 80
	cfg.GapMax = 140
	cfg.InitialPlatformCount = 10
	return cfg
}

func platformExtents(t *testing.T, w *ecs.World, s *StreamSystem) (lefts, rights []float64) {
	t.Helper()
	for _, e := range s.Platforms() {
		tr, okT := ecs.Get(w, e, component.TransformComponent)
		p, okP := ecs.Get(w, e, component.PlatformComponent)
		if !okT || !okP {
			t.Fatalf("platform %v missing components", e)
		}
		lefts = append(lefts, p.LeftEdge(tr.X))
		rights = append(rights, p.RightEdge(tr.X))
	}
	return lefts, rights
}

func TestResetSeedsInitialBatch(t *testing.T) {
	cfg := streamConfig()
	sim := newFakeSim()
	tw := buildWorld(t, sim, &cfg, component.ModeKeyboard)
	stream := NewStreamSystem(sim, &cfg, 1)

	stream.Reset(tw.w, startX(&cfg))

	if got := len(stream.Platforms()); got != 10 {
		t.Fatalf("expected exactly 10 platforms after reset, got %d", got)
	}
	if got := sim.livePlatformCount(); got != 10 {
		t.Fatalf("expected 10 platform bodies in the simulator, got %d", got)
	}

	first, ok := ecs.Get(tw.w, stream.Platforms()[0], component.TransformComponent)
	if !ok {
		t.Fatal("first platform transform missing")
	}
	if first.X != -130 {
		t.Fatalf("first platform centerX = %v, want -130", first.X)
	}

	lefts, rights := platformExtents(t, tw.w, stream)
	for i := 1; i < len(lefts); i++ {
		gap := lefts[i] - rights[i-1]
		if gap < cfg.GapMin || gap > cfg.GapMax {
			t.Fatalf("gap %d = %v, want within [%v, %v]", i, gap, cfg.GapMin, cfg.GapMax)
		}
	}

	if stream.Frontier() != rights[len(rights)-1] {
		t.Fatalf("frontier %v should equal last right edge %v", stream.Frontier(), rights[len(rights)-1])
	}
}

func TestSpawnAheadInvariant(t *testing.T) {
	cfg := streamConfig()
	sim := newFakeSim()
	tw := buildWorld(t, sim, &cfg, component.ModeKeyboard)
	stream := NewStreamSystem(sim, &cfg, 2)
	stream.Reset(tw.w, startX(&cfg))

	// Sweep the camera rightward; after every streaming step at least two
	// screens of platform coverage must exist past it.
	for camX := 0.0; camX < 20000; camX += 317 {
		tw.setCameraX(t, camX)
		stream.Update(tw.w, 1.0/60)
		if stream.Frontier() < camX+2*cfg.ScreenWidth {
			t.Fatalf("frontier %v fell behind camX+2w = %v", stream.Frontier(), camX+2*cfg.ScreenWidth)
		}
	}
}

func TestCullInvariant(t *testing.T) {
	cfg := streamConfig()
	sim := newFakeSim()
	tw := buildWorld(t, sim, &cfg, component.ModeKeyboard)
	stream := NewStreamSystem(sim, &cfg, 3)
	stream.Reset(tw.w, startX(&cfg))

	for camX := 0.0; camX < 30000; camX += 500 {
		tw.setCameraX(t, camX)
		stream.Update(tw.w, 1.0/60)

		limit := camX - 2*cfg.ScreenWidth
		_, rights := platformExtents(t, tw.w, stream)
		for i, r := range rights {
			if r < limit {
				t.Fatalf("platform %d right edge %v survived left of cull limit %v", i, r, limit)
			}
		}
		// Every culled body must be gone from the simulator too.
		if sim.livePlatformCount() != len(stream.Platforms()) {
			t.Fatalf("simulator holds %d platform bodies but streamer tracks %d",
				sim.livePlatformCount(), len(stream.Platforms()))
		}
	}

	// Live count must stay bounded no matter how far the camera went.
	if n := len(stream.Platforms()); n > 30 {
		t.Fatalf("live platform count %d should stay O(screens)", n)
	}
}

func TestPlatformOrderStaysLeftToRight(t *testing.T) {
	cfg := streamConfig()
	sim := newFakeSim()
	tw := buildWorld(t, sim, &cfg, component.ModeKeyboard)
	stream := NewStreamSystem(sim, &cfg, 4)
	stream.Reset(tw.w, startX(&cfg))

	tw.setCameraX(t, 5000)
	stream.Update(tw.w, 1.0/60)

	lefts, rights := platformExtents(t, tw.w, stream)
	for i := 1; i < len(lefts); i++ {
		if lefts[i] <= rights[i-1] {
			t.Fatalf("platforms %d and %d overlap or are out of order: left=%v prevRight=%v",
				i-1, i, lefts[i], rights[i-1])
		}
	}
}

func TestResetIsIdempotent(t *testing.T) {
	cfg := streamConfig()
	sim := newFakeSim()
	tw := buildWorld(t, sim, &cfg, component.ModeKeyboard)
	stream := NewStreamSystem(sim, &cfg, 5)

	stream.Reset(tw.w, startX(&cfg))
	stream.Reset(tw.w, startX(&cfg))

	if got := len(stream.Platforms()); got != 10 {
		t.Fatalf("expected 10 platforms after double reset, got %d", got)
	}
	// No bodies leaked from the first world: 10 platforms + 1 ball.
	if got := sim.liveCount(); got != 11 {
		t.Fatalf("expected 11 live bodies after double reset, got %d", got)
	}

	first, _ := ecs.Get(tw.w, stream.Platforms()[0], component.TransformComponent)
	if first.X != -130 {
		t.Fatalf("first platform centerX = %v after double reset, want -130", first.X)
	}
}

func TestSpawnedPlatformsInheritCurrentAngle(t *testing.T) {
	cfg := streamConfig()
	sim := newFakeSim()
	tw := buildWorld(t, sim, &cfg, component.ModeKeyboard)

	tc := tw.tiltControl(t)
	tc.Current = 0.31
	tw.setTiltControl(t, tc)

	stream := NewStreamSystem(sim, &cfg, 6)
	stream.Reset(tw.w, startX(&cfg))

	for _, e := range stream.Platforms() {
		rb, ok := ecs.Get(tw.w, e, component.RigidBodyComponent)
		if !ok {
			t.Fatal("platform rigid body missing")
		}
		if rb.Body.Angle() != 0.31 {
			t.Fatalf("spawned platform angle = %v, want 0.31", rb.Body.Angle())
		}
	}
}

func TestVerticalVariationStaysInBand(t *testing.T) {
	cfg := streamConfig()
	sim := newFakeSim()
	tw := buildWorld(t, sim, &cfg, component.ModeKeyboard)
	stream := NewStreamSystem(sim, &cfg, 7)
	stream.Reset(tw.w, startX(&cfg))

	tw.setCameraX(t, 10000)
	stream.Update(tw.w, 1.0/60)

	lo := cfg.PlatformBaseY - cfg.PlatformYVariation
	hi := cfg.PlatformBaseY + cfg.PlatformYVariation
	for _, e := range stream.Platforms() {
		tr, _ := ecs.Get(tw.w, e, component.TransformComponent)
		if tr.Y < lo || tr.Y > hi {
			t.Fatalf("platform y = %v outside [%v, %v]", tr.Y, lo, hi)
		}
	}
}
