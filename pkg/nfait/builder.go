package nfait

// Builder supplies the domain knowledge the logger needs.
// C is the process context, N the domain node, S the domain step and L the letter type.
type Builder[C, N, S any, L comparable] interface {
	// StepIntoLetter projects a step onto the alphabet.
	// ok == false turns the step into an epsilon transition.
	StepIntoLetter(c C, step S) (letter L, ok bool)

	// IsNodeFinal decides, once at discovery, whether the node's state is accepting.
	IsNodeFinal(c C, node N) bool
}

// Funcs adapts plain functions to the Builder interface.
// A nil StepToLetter makes every step an epsilon transition and
// a nil NodeFinal makes no state final.
type Funcs[C, N, S any, L comparable] struct {
	StepToLetter func(c C, step S) (L, bool)
	NodeFinal    func(c C, node N) bool
}

func (f Funcs[C, N, S, L]) StepIntoLetter(c C, step S) (L, bool) {
	if f.StepToLetter == nil {
		var zero L
		return zero, false
	}
	return f.StepToLetter(c, step)
}

func (f Funcs[C, N, S, L]) IsNodeFinal(c C, node N) bool {
	if f.NodeFinal == nil {
		return false
	}
	return f.NodeFinal(c, node)
}
