/*
Package dsl provides a fluent API to describe an explored graph and turn it
into a replayable trace.

Nodes are declared by name together with their outgoing steps. Build walks
the graph depth-first from the first declared node and produces the event
sequence an exploration engine would deliver: node ids follow discovery order,
each target is discovered right before the step reaching it, and a node's
subtree is reported complete once its children are done and every step into
it has been recorded.

	b := dsl.New("diamond")
	b.Add("top").NoEmit().Go("left", "l").Go("right", "r")
	b.Add("left").NoEmit().Silent("bottom", "tau")
	b.Add("right").NoEmit().Silent("bottom", "tau")
	b.Add("bottom").Final()

	trace, err := b.Build()
*/
package dsl
