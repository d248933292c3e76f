package ecs

import "slices"

// Scheduler keeps systems in priority buckets. Lower priorities run first;
// inside a bucket systems run in registration order.
type Scheduler struct {
	buckets    map[int][]System
	priorities []int
}

func NewScheduler() *Scheduler {
	return &Scheduler{buckets: make(map[int][]System)}
}

func (s *Scheduler) Add(priority int, system System) {
	if system == nil {
		return
	}
	if s.buckets == nil {
		s.buckets = make(map[int][]System)
	}
	if _, ok := s.buckets[priority]; !ok {
		i, _ := slices.BinarySearch(s.priorities, priority)
		s.priorities = slices.Insert(s.priorities, i, priority)
	}
	s.buckets[priority] = append(s.buckets[priority], system)
}

// Systems returns every system in run order. The slice is a copy so systems
// registered mid-frame do not disturb an iteration in progress.
func (s *Scheduler) Systems() []System {
	var systems []System
	for _, p := range s.priorities {
		systems = append(systems, s.buckets[p]...)
	}
	return systems
}

func (s *Scheduler) Len() int {
	n := 0
	for _, b := range s.buckets {
		n += len(b)
	}
	return n
}
