package ecs

// System processes every entity whose components cover Requires. Concrete
// systems embed SystemBase, which supplies the optional hooks as no-ops and
// holds the membership the world maintains for them.
type System interface {
	Name() string
	// Requires lists the component kinds an entity needs to get an Aspect.
	// It must be non-empty and must not change after registration.
	Requires() []ComponentID
	// Watches lists the kinds whose dirty signal puts a tracked entity into
	// the dirty set handed to Update.
	Watches() []ComponentID
	// Debug systems keep updating while the game step is zero.
	Debug() bool

	Init()
	Update(dt float64, aspects map[Entity]*Aspect, dirty EntitySet, clock Clock)
	OnAdd(a *Aspect)
	OnRemove(a *Aspect)
	OnEnabled(aspects map[Entity]*Aspect)
	OnDisabled(aspects map[Entity]*Aspect)
	OnClear()

	base() *SystemBase
}

type SystemBase struct {
	world      *World
	requires   Mask
	aspects    map[Entity]*Aspect
	dirty      EntitySet
	disabled   bool
	registered bool
	priority   int
}

func (b *SystemBase) base() *SystemBase { return b }

func (b *SystemBase) Watches() []ComponentID { return nil }

func (b *SystemBase) Debug() bool { return false }

func (b *SystemBase) Init() {}

func (b *SystemBase) OnAdd(*Aspect) {}

func (b *SystemBase) OnRemove(*Aspect) {}

func (b *SystemBase) OnEnabled(map[Entity]*Aspect) {}

func (b *SystemBase) OnDisabled(map[Entity]*Aspect) {}

func (b *SystemBase) OnClear() {}

// World returns the world the system is registered with.
func (b *SystemBase) World() *World {
	return b.world
}

// Events returns the world event queue, or nil before registration.
func (b *SystemBase) Events() *EventQueue {
	if b.world == nil {
		return nil
	}
	return b.world.Events()
}

func (b *SystemBase) Enabled() bool {
	return b.registered && !b.disabled
}

func (b *SystemBase) Priority() int {
	return b.priority
}

// Aspect returns the system's aspect for e.
func (b *SystemBase) Aspect(e Entity) (*Aspect, bool) {
	a, ok := b.aspects[e]
	return a, ok
}

// Tracked returns how many entities the system currently tracks.
func (b *SystemBase) Tracked() int {
	return len(b.aspects)
}
