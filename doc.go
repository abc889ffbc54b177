/*
Package loggers collects observers for graph exploration processes.

A process manager explores a graph from a root node. Every time it discovers
a node, records a step between two nodes, finishes a node's subtree or
terminates, it notifies its loggers through the ports.ProcessLogger
interface. Loggers turn this event stream into artifacts:

  - nfait.Logger builds a nondeterministic finite automaton with epsilon
    transitions from the explored graph.
  - stepstrace.Logger tracks path-derived objects along the frontier and emits
    them at selected nodes, optionally deduplicated.
  - nodesprint.Logger renders selected nodes on their own.
  - metrics and observability loggers watch the run without producing files.

The Dispatcher fans events out to several loggers in order.

# Usage

	nfa := nfait.New[Ctx, Node, Step, rune](builder)
	tracer := stepstrace.New[Ctx, Node, Step, Path](printer, file.New("out"))

	d := loggers.New[Ctx, Node, Step](
		loggers.WithLoggers[Ctx, Node, Step](nfa, tracer),
	)

	if err := d.Initialize(ctx); err != nil {
		log.Fatal(err)
	}
	// ... drive d from the exploration loop ...
	if err := d.ProcessTerminated(ctx, c); err != nil {
		log.Fatal(err)
	}
	automaton := nfa.Result()

A contract violation raised by any logger stops the dispatch: the Dispatcher
stores it and returns it from every later call.
*/
package loggers
