package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownNode is returned when an event references a node id that was never discovered.
var ErrUnknownNode = errors.New("unknown node reference")

// ErrDuplicateNode is returned when the same node id is discovered twice.
var ErrDuplicateNode = errors.New("duplicate node discovery")

// ErrNoFrontier is returned when an event needs a frontier entry that does not exist,
// either because the node was never discovered or because it was already reclaimed.
var ErrNoFrontier = errors.New("no open frontier entry")

// ContractViolation reports that the exploration engine broke its delivery-order
// contract. It is fatal: the logger that raised it refuses every later event.
type ContractViolation struct {
	Event  EventKind
	NodeID NodeID
	Err    error
}

// NewContractViolation builds a violation for the given event and node.
func NewContractViolation(event EventKind, id NodeID, err error) *ContractViolation {
	return &ContractViolation{Event: event, NodeID: id, Err: err}
}

func (v *ContractViolation) Error() string {
	return fmt.Sprintf("contract violation on %s for node %d: %v", v.Event, v.NodeID, v.Err)
}

func (v *ContractViolation) Unwrap() error {
	return v.Err
}

// IsContractViolation reports whether err carries a ContractViolation.
func IsContractViolation(err error) bool {
	var v *ContractViolation
	return errors.As(err, &v)
}

// ErrArtifactNotFound is returned when an artifact name cannot be found in a sink.
var ErrArtifactNotFound = errors.New("artifact not found")
