/*
Package stepstrace traces, for every open node of an exploration, the set of
distinct objects built along the paths that reach it.

The root node is seeded with an initial object. Each recorded step extends
every object alive at its origin and merges the results into its target.
Objects reaching a node the domain deems interesting are emitted as artifacts,
at most once each when deduplication is enabled. A node's objects are released
as soon as the engine reports that its subtree is complete, so memory follows
the width of the live frontier rather than the size of the explored graph.

Object identity is structural: two objects with the same Key are the same
object, whichever path or node produced them.
*/
package stepstrace
