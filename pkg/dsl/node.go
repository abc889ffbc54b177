package dsl

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	name  string
	label string
	final bool
	emit  *bool
	steps []step
}

type step struct {
	label  string
	target string
	silent bool
}

// Label sets the node label. It defaults to the node name.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.label = label
	return n
}

// Final marks the node as accepting.
func (n *NodeBuilder) Final() *NodeBuilder {
	n.final = true
	return n
}

// NoEmit excludes the node from path emission.
func (n *NodeBuilder) NoEmit() *NodeBuilder {
	emit := false
	n.emit = &emit
	return n
}

// Go adds a lettered step to the target node.
func (n *NodeBuilder) Go(target, label string) *NodeBuilder {
	n.steps = append(n.steps, step{label: label, target: target})
	return n
}

// Silent adds an unobservable step to the target node.
func (n *NodeBuilder) Silent(target, label string) *NodeBuilder {
	n.steps = append(n.steps, step{label: label, target: target, silent: true})
	return n
}

func (n *NodeBuilder) data() map[string]any {
	label := n.label
	if label == "" {
		label = n.name
	}
	data := map[string]any{"label": label}
	if n.final {
		data["final"] = true
	}
	if n.emit != nil {
		data["emit"] = *n.emit
	}
	return data
}

func (s step) data() map[string]any {
	data := map[string]any{"label": s.label}
	if s.silent {
		data["silent"] = true
	}
	return data
}
