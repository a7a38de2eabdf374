package ecs

import (
	"testing"

	"github.com/HAAIL-Universe/tiltrunner/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				e := w.CreateEntity()
				if !e.Valid() || !w.IsAlive(e) {
					t.Fatalf("created entity %v should be valid and alive", e)
				}
				ents = append(ents, e)
			}
			if c.destroyIndex >= 0 {
				victim := ents[c.destroyIndex]
				if !w.DestroyEntity(victim) {
					t.Fatalf("DestroyEntity should return true for a live entity")
				}
				if w.IsAlive(victim) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(victim) {
					t.Fatalf("double destroy should report false")
				}
			}
		})
	}
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()
	first := w.CreateEntity()
	w.DestroyEntity(first)
	second := w.CreateEntity() // reuses the slot with a bumped generation

	if w.IsAlive(first) {
		t.Fatalf("stale handle must not be alive after slot reuse")
	}
	if !w.IsAlive(second) {
		t.Fatalf("recycled entity should be alive")
	}
	if first == second {
		t.Fatalf("recycled handle should differ from the stale one")
	}
}

func TestComponentsAndQueries(t *testing.T) {
	type pos struct{ X, Y float64 }
	type tag struct{}

	posHandle := component.NewComponent[pos]()
	tagHandle := component.NewComponent[tag]()

	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()

	if err := Add(w, a, posHandle, pos{X: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := Add(w, b, posHandle, pos{X: 2}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := Add(w, b, tagHandle, tag{}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, ok := Get(w, a, posHandle)
	if !ok || got.X != 1 {
		t.Fatalf("Get(a) = %+v ok=%v, want X=1", got, ok)
	}

	// Mutate-and-add-back round trip.
	got.X = 7
	if err := Add(w, a, posHandle, got); err != nil {
		t.Fatalf("Add back: %v", err)
	}
	if again, _ := Get(w, a, posHandle); again.X != 7 {
		t.Fatalf("written-back value lost, got %+v", again)
	}

	both := w.Query(posHandle.Kind(), tagHandle.Kind())
	if len(both) != 1 || both[0] != b {
		t.Fatalf("Query(pos, tag) = %v, want [%v]", both, b)
	}
	if all := w.Query(posHandle.Kind()); len(all) != 2 {
		t.Fatalf("Query(pos) returned %d entities, want 2", len(all))
	}

	if !Remove(w, b, tagHandle) {
		t.Fatalf("Remove should report true for a present component")
	}
	if _, ok := w.First(tagHandle.Kind()); ok {
		t.Fatalf("no entity should match tag after removal")
	}
}

func TestDestroyDropsComponents(t *testing.T) {
	type marker struct{ N int }
	h := component.NewComponent[marker]()

	w := NewWorld()
	e := w.CreateEntity()
	if err := Add(w, e, h, marker{N: 1}); err != nil {
		t.Fatal(err)
	}
	w.DestroyEntity(e)

	if len(w.Query(h.Kind())) != 0 {
		t.Fatalf("destroyed entity still visible in query")
	}

	// The recycled slot must come up clean.
	reborn := w.CreateEntity()
	if Has(w, reborn, h) {
		t.Fatalf("recycled entity inherited a component from its predecessor")
	}
}

func TestAddToDeadEntityFails(t *testing.T) {
	h := component.NewComponent[int]()
	w := NewWorld()
	e := w.CreateEntity()
	w.DestroyEntity(e)

	if err := Add(w, e, h, 1); err == nil {
		t.Fatalf("expected error adding a component to a dead entity")
	}
}
