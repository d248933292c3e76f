package component

import (
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
)

// FreshCollisions maps the other entity of each current contact to the
// collision seen from the owning shape. Changes that alter membership or a
// stored value mark the owning shape dirty.
type FreshCollisions struct {
	owner *ecs.Signal
	items map[ecs.Entity]common.CollisionInfo
}

func (f *FreshCollisions) Set(e ecs.Entity, info common.CollisionInfo) {
	if f.items == nil {
		f.items = make(map[ecs.Entity]common.CollisionInfo)
	}
	if old, ok := f.items[e]; ok && old == info {
		return
	}
	f.items[e] = info
	f.owner.Dirty()
}

func (f *FreshCollisions) Get(e ecs.Entity) (common.CollisionInfo, bool) {
	info, ok := f.items[e]
	return info, ok
}

func (f *FreshCollisions) Has(e ecs.Entity) bool {
	_, ok := f.items[e]
	return ok
}

func (f *FreshCollisions) Delete(e ecs.Entity) {
	if _, ok := f.items[e]; !ok {
		return
	}
	delete(f.items, e)
	f.owner.Dirty()
}

func (f *FreshCollisions) Clear() {
	if len(f.items) == 0 {
		return
	}
	clear(f.items)
	f.owner.Dirty()
}

func (f *FreshCollisions) Len() int {
	return len(f.items)
}

// Entities returns the contacts in ascending id order.
func (f *FreshCollisions) Entities() []ecs.Entity {
	set := make(ecs.EntitySet, len(f.items))
	for e := range f.items {
		set.Add(e)
	}
	return set.Sorted()
}

// ResolvedSet is a notifying entity set.
type ResolvedSet struct {
	owner *ecs.Signal
	items ecs.EntitySet
}

func (r *ResolvedSet) Add(e ecs.Entity) {
	if r.items == nil {
		r.items = make(ecs.EntitySet)
	}
	if r.items.Has(e) {
		return
	}
	r.items.Add(e)
	r.owner.Dirty()
}

func (r *ResolvedSet) Has(e ecs.Entity) bool {
	return r.items.Has(e)
}

func (r *ResolvedSet) Delete(e ecs.Entity) {
	if !r.items.Has(e) {
		return
	}
	r.items.Remove(e)
	r.owner.Dirty()
}

func (r *ResolvedSet) Clear() {
	if len(r.items) == 0 {
		return
	}
	r.items.Clear()
	r.owner.Dirty()
}

func (r *ResolvedSet) Len() int {
	return len(r.items)
}

func (r *ResolvedSet) Entities() []ecs.Entity {
	return r.items.Sorted()
}
