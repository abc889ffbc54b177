package nfait

import "sort"

// StateSet is a set of automaton states.
type StateSet map[int]struct{}

// NewStateSet builds a set holding the given states.
func NewStateSet(states ...int) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

// Add inserts a state; inserting an existing state is a no-op.
func (s StateSet) Add(state int) {
	s[state] = struct{}{}
}

// Has reports whether state belongs to the set.
func (s StateSet) Has(state int) bool {
	_, ok := s[state]
	return ok
}

// Sorted returns the states in increasing order.
func (s StateSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for st := range s {
		out = append(out, st)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy.
func (s StateSet) Clone() StateSet {
	c := make(StateSet, len(s))
	for st := range s {
		c[st] = struct{}{}
	}
	return c
}
