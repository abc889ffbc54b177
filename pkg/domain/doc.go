/*
Package domain contains the core vocabulary shared by every process logger.

It defines the identifiers and event kinds delivered by an exploration engine,
and the contract violations a logger reports when that engine breaks its
delivery-order guarantees. This package is kept pure and free of external
dependencies like I/O or persistence.

# Key Entities

  - NodeID: Engine-assigned identifier of an explored node, increasing in discovery order.
  - EventKind: The four lifecycle callbacks a logger consumes.
  - ContractViolation: A fatal error naming the offending node id and event kind.
*/
package domain
