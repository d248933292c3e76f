package ecs

// Query returns entities holding every listed kind, in ascending id order.
// It walks the smallest store instead of every entity.
func (w *World) Query(kinds ...ComponentID) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	var smallest *SparseSet
	for _, k := range kinds {
		s := w.stores[k]
		if s == nil || s.Len() == 0 {
			return nil
		}
		if smallest == nil || s.Len() < smallest.Len() {
			smallest = s
		}
	}
	need := MaskOf(kinds...)
	out := make(EntitySet, smallest.Len())
	for _, e := range smallest.Entities() {
		if c := w.entities.get(e); c != nil && c.mask.Contains(need) {
			out.Add(e)
		}
	}
	return out.Sorted()
}

// First returns the lowest entity holding every listed kind.
func (w *World) First(kinds ...ComponentID) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
