/*
Package nfait rebuilds a non-deterministic finite automaton with epsilon
transitions (NFAIT) from the trace of an exploration process.

Every discovered node becomes one automaton state, in discovery order, the
first one being the single initial state. Every recorded step becomes either a
lettered transition or an epsilon transition, depending on how the domain
projects it onto an alphabet. The sparse structure accumulated while the
process runs is densified into an Automaton when the process terminates.

Usage:

	builder := nfait.Funcs[*Ctx, Node, Step, rune]{
		StepToLetter: func(_ *Ctx, s Step) (rune, bool) { return s.Letter, !s.Silent },
		NodeFinal:    func(_ *Ctx, n Node) bool { return n.Accepting },
	}
	logger := nfait.New[*Ctx, Node, Step, rune](builder,
		nfait.WithSink[*Ctx, Node, Step, rune](sink, "process_nfait"),
	)
	// register logger with the engine, then after termination:
	aut := logger.Result()
*/
package nfait
