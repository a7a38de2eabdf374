package ecs

// entityStore tracks slot generations and recycles freed ids.
type entityStore struct {
	gens []generation // index = id-1
	free []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		id = entityID(len(s.gens))
	}
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	if s.gens[id-1] != e.generation() {
		return false
	}
	s.gens[id-1]++
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.gens[id-1] == e.generation()
}

// liveEntity rebuilds the Entity handle for a live slot id.
func (s *entityStore) liveEntity(id entityID) (Entity, bool) {
	if id == 0 || int(id) > len(s.gens) {
		return 0, false
	}
	return makeEntity(id, s.gens[id-1]), true
}
