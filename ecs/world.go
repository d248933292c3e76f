package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// World owns entities, their components and the registered systems.
// Everything runs on the caller's goroutine; one Update + FinishUpdate pair
// makes a frame.
type World struct {
	entities  entityStore
	stores    [MaxComponentKinds]*SparseSet
	scheduler *Scheduler
	byName    map[string]System
	watchers  map[ComponentID][]System

	destroyQueue []Entity
	queued       EntitySet

	events EventQueue
	clock  Clock
	time   timeControl
	logger *zap.Logger
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		scheduler: NewScheduler(),
		byName:    make(map[string]System),
		watchers:  make(map[ComponentID][]System),
		queued:    make(EntitySet),
		time:      timeControl{scale: 1, slowScale: 1},
		logger:    zap.NewNop(),
	}
}

func (w *World) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	w.logger = l
}

func (w *World) Logger() *zap.Logger {
	return w.logger
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

// Clock returns the timing of the last Update.
func (w *World) Clock() Clock {
	return w.clock
}

// AddEntity allocates a new entity with no components.
func (w *World) AddEntity() Entity {
	return w.entities.create(w)
}

// Alive reports whether an entity handle is live.
func (w *World) Alive(e Entity) bool {
	return w.entities.isAlive(e)
}

func (w *World) EntityCount() int {
	return len(w.entities.alive)
}

// RemoveEntity queues e for destruction in FinishUpdate. The entity and its
// components stay readable for the rest of the frame.
func (w *World) RemoveEntity(e Entity) {
	if !w.entities.isAlive(e) || w.queued.Has(e) {
		return
	}
	w.queued.Add(e)
	w.destroyQueue = append(w.destroyQueue, e)
}

// PendingRemoval reports whether e is queued for destruction.
func (w *World) PendingRemoval(e Entity) bool {
	return w.queued.Has(e)
}

func (w *World) destroyEntity(e Entity) {
	c := w.entities.get(e)
	if c == nil {
		return
	}
	for _, s := range w.scheduler.Systems() {
		b := s.base()
		a, ok := b.aspects[e]
		if !ok {
			continue
		}
		delete(b.aspects, e)
		b.dirty.Remove(e)
		s.OnRemove(a)
	}
	for _, kind := range c.kinds {
		if sig, ok := w.stores[kind].Get(e).(signaler); ok {
			sig.unbindSignal()
		}
		w.stores[kind].Remove(e)
	}
	w.entities.destroy(e)
}

func (w *World) store(kind ComponentID) *SparseSet {
	if w.stores[kind] == nil {
		w.stores[kind] = &SparseSet{}
	}
	return w.stores[kind]
}

// AddComponent attaches value under kind. It fails if the entity is gone,
// already has a component of that kind, or value is bound to another entity.
func (w *World) AddComponent(e Entity, kind ComponentID, value any) error {
	c := w.entities.get(e)
	if c == nil {
		return fmt.Errorf("add %s to entity %v: %w", ComponentName(kind), e, ErrEntityNotAlive)
	}
	if value == nil {
		return fmt.Errorf("add %s to entity %v: %w", ComponentName(kind), e, ErrNilComponent)
	}
	if c.mask.Has(kind) {
		w.logger.Warn("duplicate component", zap.Uint32("entity", uint32(e)), zap.String("component", ComponentName(kind)))
		return fmt.Errorf("add %s to entity %v: %w", ComponentName(kind), e, ErrDuplicateComponent)
	}
	sig, signals := value.(signaler)
	if signals && sig.bound() {
		w.logger.Warn("component already owned", zap.Uint32("entity", uint32(e)), zap.String("component", ComponentName(kind)))
		return fmt.Errorf("add %s to entity %v: %w", ComponentName(kind), e, ErrComponentOwned)
	}

	w.store(kind).Set(e, value)
	c.add(kind)
	if signals {
		sig.bindSignal(w, e, kind)
	}
	w.refresh(e, c)
	w.MarkDirty(e, kind)
	return nil
}

// RemoveComponent detaches the component of kind. It fails if absent.
func (w *World) RemoveComponent(e Entity, kind ComponentID) error {
	c := w.entities.get(e)
	if c == nil {
		return fmt.Errorf("remove %s from entity %v: %w", ComponentName(kind), e, ErrEntityNotAlive)
	}
	if !c.mask.Has(kind) {
		w.logger.Warn("remove of absent component", zap.Uint32("entity", uint32(e)), zap.String("component", ComponentName(kind)))
		return fmt.Errorf("remove %s from entity %v: %w", ComponentName(kind), e, ErrMissingComponent)
	}

	value := w.stores[kind].Get(e)
	w.stores[kind].Remove(e)
	c.remove(kind)
	w.refresh(e, c)
	w.MarkDirty(e, kind)
	if sig, ok := value.(signaler); ok {
		sig.unbindSignal()
	}
	return nil
}

// RemoveComponentIfExists is RemoveComponent without the failure on absence.
func (w *World) RemoveComponentIfExists(e Entity, kind ComponentID) bool {
	c := w.entities.get(e)
	if c == nil || !c.mask.Has(kind) {
		return false
	}
	return w.RemoveComponent(e, kind) == nil
}

// Components returns a read-only view of e, or nil once e is destroyed.
func (w *World) Components(e Entity) *Components {
	c := w.entities.get(e)
	if c == nil {
		return nil
	}
	return c.view
}

// MarkDirty puts e into the dirty set of every system that watches kind and
// currently tracks e.
func (w *World) MarkDirty(e Entity, kind ComponentID) {
	for _, s := range w.watchers[kind] {
		b := s.base()
		if _, ok := b.aspects[e]; ok {
			b.dirty.Add(e)
		}
	}
}

func (w *World) refresh(e Entity, c *container) {
	for _, s := range w.scheduler.Systems() {
		w.check(e, c, s)
	}
}

// check keeps s's aspect for e in line with the entity's component set.
func (w *World) check(e Entity, c *container, s System) {
	b := s.base()
	a, tracked := b.aspects[e]
	if c.mask.Contains(b.requires) {
		if !tracked {
			a = &Aspect{Components: c.view}
			b.aspects[e] = a
			s.OnAdd(a)
		}
		return
	}
	if tracked {
		delete(b.aspects, e)
		b.dirty.Remove(e)
		s.OnRemove(a)
	}
}

// AddSystem registers s at priority and computes its membership over every
// existing entity.
func (w *World) AddSystem(priority int, s System) error {
	if s == nil {
		return ErrNilSystem
	}
	b := s.base()
	if b.registered {
		return fmt.Errorf("add system %s: %w", s.Name(), ErrSystemRegistered)
	}
	if _, taken := w.byName[s.Name()]; taken {
		return fmt.Errorf("add system %s: name taken: %w", s.Name(), ErrSystemRegistered)
	}
	requires := MaskOf(s.Requires()...)
	if requires.IsZero() {
		return fmt.Errorf("add system %s: %w", s.Name(), ErrEmptyRequirements)
	}

	b.world = w
	b.requires = requires
	b.aspects = make(map[Entity]*Aspect)
	b.dirty = make(EntitySet)
	b.priority = priority
	b.registered = true
	s.Init()

	for _, e := range w.entities.sorted() {
		w.check(e, w.entities.get(e), s)
	}

	w.scheduler.Add(priority, s)
	w.byName[s.Name()] = s
	for _, kind := range s.Watches() {
		w.watchers[kind] = append(w.watchers[kind], s)
	}

	w.logger.Debug("system registered",
		zap.String("system", s.Name()),
		zap.Int("priority", priority),
		zap.Int("tracked", len(b.aspects)),
	)
	return nil
}

// System returns the registered system with the given name.
func (w *World) System(name string) (System, bool) {
	s, ok := w.byName[name]
	return s, ok
}

// Systems returns every registered system in run order.
func (w *World) Systems() []System {
	return w.scheduler.Systems()
}

// GetSystem returns the first registered system of type S.
func GetSystem[S System](w *World) (S, bool) {
	for _, s := range w.scheduler.Systems() {
		if typed, ok := s.(S); ok {
			return typed, true
		}
	}
	var zero S
	return zero, false
}

func (w *World) owns(s System) error {
	if s == nil {
		return ErrNilSystem
	}
	if b := s.base(); !b.registered || b.world != w {
		return fmt.Errorf("system %s: %w", s.Name(), ErrSystemNotRegistered)
	}
	return nil
}

func (w *World) named(name string) (System, error) {
	s, ok := w.byName[name]
	if !ok {
		return nil, fmt.Errorf("system %s: %w", name, ErrSystemNotRegistered)
	}
	return s, nil
}

func (w *World) EnableSystem(s System) error {
	if err := w.owns(s); err != nil {
		return err
	}
	b := s.base()
	if !b.disabled {
		return nil
	}
	b.disabled = false
	s.OnEnabled(b.aspects)
	return nil
}

func (w *World) DisableSystem(s System) error {
	if err := w.owns(s); err != nil {
		return err
	}
	b := s.base()
	if b.disabled {
		return nil
	}
	b.disabled = true
	s.OnDisabled(b.aspects)
	return nil
}

// ToggleSystem flips s between enabled and disabled and reports the new
// enabled state.
func (w *World) ToggleSystem(s System) (bool, error) {
	if err := w.owns(s); err != nil {
		return false, err
	}
	if s.base().disabled {
		return true, w.EnableSystem(s)
	}
	return false, w.DisableSystem(s)
}

func (w *World) EnableSystemNamed(name string) error {
	s, err := w.named(name)
	if err != nil {
		return err
	}
	return w.EnableSystem(s)
}

func (w *World) DisableSystemNamed(name string) error {
	s, err := w.named(name)
	if err != nil {
		return err
	}
	return w.DisableSystem(s)
}

func (w *World) ToggleSystemNamed(name string) (bool, error) {
	s, err := w.named(name)
	if err != nil {
		return false, err
	}
	return w.ToggleSystem(s)
}

// SetTimeScale scales every future game delta. Negative scales clamp to 0.
func (w *World) SetTimeScale(scale float64) {
	w.time.scale = max(scale, 0)
}

func (w *World) TimeScale() float64 {
	return w.time.scale
}

func (w *World) Pause() {
	w.time.paused = true
}

func (w *World) Resume() {
	w.time.paused = false
}

func (w *World) Paused() bool {
	return w.time.paused
}

// SlowMotion multiplies the game step by scale for durationMs of wall time.
// A scale of 0 freezes gameplay systems for that long.
func (w *World) SlowMotion(scale, durationMs float64) {
	w.time.slowMotion(scale, durationMs)
}

// Update runs one frame of every enabled system in priority order and
// returns the game step that was applied.
func (w *World) Update(wallDelta, gameDelta, now float64) float64 {
	dt := w.time.step(wallDelta, gameDelta)
	w.clock.advance(now, wallDelta, dt)

	for _, s := range w.scheduler.Systems() {
		b := s.base()
		if b.disabled {
			continue
		}
		if dt == 0 && !s.Debug() {
			continue
		}
		s.Update(dt, b.aspects, b.dirty, w.clock)
		b.dirty.Clear()
	}
	return dt
}

// FinishUpdate destroys every entity queued by RemoveEntity this frame.
func (w *World) FinishUpdate() {
	for len(w.destroyQueue) > 0 {
		queue := w.destroyQueue
		w.destroyQueue = nil
		for _, e := range queue {
			w.queued.Remove(e)
			w.destroyEntity(e)
		}
	}
}

// Clear destroys every entity, resets entity ids and lets systems refill
// their own pools through OnClear.
func (w *World) Clear() {
	entities := w.entities.sorted()
	for _, e := range entities {
		w.destroyEntity(e)
	}
	w.destroyQueue = nil
	w.queued.Clear()
	w.entities.reset()
	for _, st := range w.stores {
		if st != nil {
			st.Reset()
		}
	}

	systems := w.scheduler.Systems()
	for _, s := range systems {
		s.base().dirty.Clear()
	}
	for _, s := range systems {
		s.OnClear()
	}
	w.events.flush()

	w.logger.Debug("world cleared", zap.Int("entities", len(entities)), zap.Int("systems", len(systems)))
}
