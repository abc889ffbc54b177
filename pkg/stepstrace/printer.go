package stepstrace

// Object is a value accumulated along a path from the root.
// Key must be a structural identity: equal objects return equal keys.
type Object interface {
	Key() string
}

// Printer supplies the domain knowledge the tracer needs.
type Printer[C, N, S any, O Object] interface {
	// InitialObject builds the object attached to the root node.
	InitialObject(c C, root N) O

	// AddStep returns the object obtained by extending object with step.
	// It must not mutate object.
	AddStep(c C, object O, step S) O

	// ShouldEmit decides whether objects reaching node (at depth) are emitted.
	ShouldEmit(c C, node N, depth uint32) bool

	// Print renders an object into the bytes of its artifact.
	Print(c C, object O) ([]byte, error)
}

// Funcs adapts plain functions to the Printer interface.
// A nil Emit emits at every node.
type Funcs[C, N, S any, O Object] struct {
	Initial func(c C, root N) O
	Extend  func(c C, object O, step S) O
	Emit    func(c C, node N, depth uint32) bool
	Render  func(c C, object O) ([]byte, error)
}

func (f Funcs[C, N, S, O]) InitialObject(c C, root N) O {
	return f.Initial(c, root)
}

func (f Funcs[C, N, S, O]) AddStep(c C, object O, step S) O {
	return f.Extend(c, object, step)
}

func (f Funcs[C, N, S, O]) ShouldEmit(c C, node N, depth uint32) bool {
	if f.Emit == nil {
		return true
	}
	return f.Emit(c, node, depth)
}

func (f Funcs[C, N, S, O]) Print(c C, object O) ([]byte, error) {
	return f.Render(c, object)
}
