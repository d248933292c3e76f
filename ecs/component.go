package ecs

import (
	"fmt"
	"math/bits"
	"sync"
)

// MaxComponentKinds bounds the component registry so a Mask stays a fixed
// size array.
const MaxComponentKinds = 256

type ComponentID uint16

var registry struct {
	mu    sync.RWMutex
	names []string
}

func registerComponent(name string) ComponentID {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if len(registry.names) >= MaxComponentKinds {
		panic(fmt.Sprintf("ecs: component registry full, cannot register %q", name))
	}
	registry.names = append(registry.names, name)
	return ComponentID(len(registry.names) - 1)
}

// ComponentName returns the name a component kind was registered with.
func ComponentName(id ComponentID) string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if int(id) >= len(registry.names) {
		return fmt.Sprintf("component#%d", id)
	}
	return registry.names[id]
}

// ComponentKind identifies a component type in the registry.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any](name string) ComponentKind[T] {
	return ComponentKind[T]{id: registerComponent(name)}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Name() string {
	return ComponentName(k.id)
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T](name)}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.kind.id
}

// Identified is anything that names a component kind.
type Identified interface {
	ID() ComponentID
}

// Kinds collects component ids, mostly for System.Requires and Watches.
func Kinds(ks ...Identified) []ComponentID {
	out := make([]ComponentID, 0, len(ks))
	for _, k := range ks {
		out = append(out, k.ID())
	}
	return out
}

// Mask is a bitset over component ids.
type Mask [MaxComponentKinds / 64]uint64

func MaskOf(ids ...ComponentID) Mask {
	var m Mask
	for _, id := range ids {
		m.Set(id)
	}
	return m
}

func (m *Mask) Set(id ComponentID) {
	m[id/64] |= 1 << (id % 64)
}

func (m *Mask) Unset(id ComponentID) {
	m[id/64] &^= 1 << (id % 64)
}

func (m Mask) Has(id ComponentID) bool {
	return m[id/64]&(1<<(id%64)) != 0
}

// Contains reports whether every bit of other is also set in m.
func (m Mask) Contains(other Mask) bool {
	for i := range m {
		if m[i]&other[i] != other[i] {
			return false
		}
	}
	return true
}

func (m Mask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

func (m Mask) IsZero() bool {
	return m == Mask{}
}
