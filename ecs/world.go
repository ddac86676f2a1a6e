package ecs

import "github.com/milk9111/rigcam/ecs/component"

// World owns entities, component storage, the system order and the event
// queue. It is not safe for concurrent use.
type World struct {
	entities   entityStore
	components map[component.ComponentID]*SparseSet
	scheduler  Scheduler
	events     EventQueue

	dt    float64
	time  float64
	frame uint64
}

func NewWorld() *World {
	return &World{components: make(map[component.ComponentID]*SparseSet)}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It reports
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, set := range w.components {
		set.Remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return w.scheduler.Systems()
}

// Update advances the clock by dt seconds and runs every system once in
// insertion order. Events pushed before or during the update are visible to
// all systems and dropped afterwards.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	w.dt = dt
	w.time += dt
	w.frame++
	w.scheduler.Update(w)
	w.events.flush()
}

// DeltaTime is the dt of the update in progress.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Time is the total simulated time in seconds.
func (w *World) Time() float64 {
	if w == nil {
		return 0
	}
	return w.time
}

func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) set(id component.ComponentID, create bool) *SparseSet {
	if w.components == nil {
		w.components = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.components[id]
	if !ok && create {
		s = &SparseSet{}
		w.components[id] = s
	}
	return s
}
