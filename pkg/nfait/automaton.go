package nfait

import (
	"fmt"
	"sort"
)

// Automaton is the dense NFAIT produced when a process terminates.
// States are the integers [0, NumStates()); Transitions and Epsilon hold
// exactly one row per state, empty when the state has no outgoing edge.
type Automaton[L comparable] struct {
	Alphabet    map[L]struct{}
	Initials    StateSet
	Finals      StateSet
	Transitions []map[L]StateSet
	Epsilon     []StateSet
}

// NumStates returns the number of states.
func (a *Automaton[L]) NumStates() int {
	return len(a.Transitions)
}

// Targets returns the states reached from state by reading letter.
func (a *Automaton[L]) Targets(state int, letter L) StateSet {
	if state < 0 || state >= len(a.Transitions) {
		return StateSet{}
	}
	if targets, ok := a.Transitions[state][letter]; ok {
		return targets
	}
	return StateSet{}
}

// EpsilonTargets returns the states reached from state without reading a letter.
func (a *Automaton[L]) EpsilonTargets(state int) StateSet {
	if state < 0 || state >= len(a.Epsilon) {
		return StateSet{}
	}
	return a.Epsilon[state]
}

// Letters returns the alphabet ordered by the textual form given by format.
// A nil format uses fmt.Sprint.
func (a *Automaton[L]) Letters(format func(L) string) []L {
	if format == nil {
		format = func(l L) string { return fmt.Sprint(l) }
	}
	letters := make([]L, 0, len(a.Alphabet))
	for l := range a.Alphabet {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool {
		return format(letters[i]) < format(letters[j])
	})
	return letters
}

// Accessible returns the states reachable from an initial state, following
// lettered and epsilon transitions alike.
func (a *Automaton[L]) Accessible() StateSet {
	successors := func(st int) []int {
		if st >= a.NumStates() {
			return nil
		}
		var next []int
		for _, targets := range a.Transitions[st] {
			for t := range targets {
				next = append(next, t)
			}
		}
		for t := range a.Epsilon[st] {
			next = append(next, t)
		}
		return next
	}
	return closure(a.Initials, successors)
}

// CoAccessible returns the states from which a final state is reachable.
func (a *Automaton[L]) CoAccessible() StateSet {
	predecessors := make([][]int, a.NumStates())
	for orig, outgoing := range a.Transitions {
		for _, targets := range outgoing {
			for t := range targets {
				predecessors[t] = append(predecessors[t], orig)
			}
		}
	}
	for orig, targets := range a.Epsilon {
		for t := range targets {
			predecessors[t] = append(predecessors[t], orig)
		}
	}
	return closure(a.Finals, func(st int) []int { return predecessors[st] })
}

func closure(start StateSet, next func(int) []int) StateSet {
	seen := start.Clone()
	queue := start.Sorted()
	for len(queue) > 0 {
		st := queue[0]
		queue = queue[1:]
		for _, n := range next(st) {
			if !seen.Has(n) {
				seen.Add(n)
				queue = append(queue, n)
			}
		}
	}
	return seen
}

// Document is the serializable form of an Automaton, with letters rendered
// as strings and every set sorted.
type Document struct {
	Alphabet    []string           `json:"alphabet" yaml:"alphabet"`
	Initials    []int              `json:"initials" yaml:"initials"`
	Finals      []int              `json:"finals" yaml:"finals"`
	Transitions []map[string][]int `json:"transitions" yaml:"transitions"`
	Epsilon     [][]int            `json:"epsilon" yaml:"epsilon"`
}

// Document renders the automaton with format (fmt.Sprint when nil).
func (a *Automaton[L]) Document(format func(L) string) Document {
	if format == nil {
		format = func(l L) string { return fmt.Sprint(l) }
	}

	doc := Document{
		Alphabet:    make([]string, 0, len(a.Alphabet)),
		Initials:    a.Initials.Sorted(),
		Finals:      a.Finals.Sorted(),
		Transitions: make([]map[string][]int, a.NumStates()),
		Epsilon:     make([][]int, a.NumStates()),
	}
	for _, l := range a.Letters(format) {
		doc.Alphabet = append(doc.Alphabet, format(l))
	}
	for st := 0; st < a.NumStates(); st++ {
		row := make(map[string][]int, len(a.Transitions[st]))
		for l, targets := range a.Transitions[st] {
			row[format(l)] = targets.Sorted()
		}
		doc.Transitions[st] = row
		doc.Epsilon[st] = a.Epsilon[st].Sorted()
	}
	return doc
}
