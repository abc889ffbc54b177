package domain

// NodeID is the identifier the exploration engine assigns to a node.
// Ids are strictly increasing over discovery order but not necessarily
// contiguous: filtering and memoization leave gaps.
type NodeID uint32

// RootNodeID is the id the exploration engine gives to its initial node.
const RootNodeID NodeID = 1
