package domain

import (
	"context"
	"time"
)

// EventKind defines the category of a lifecycle callback.
type EventKind string

const (
	EventNodeDiscovered      EventKind = "node_discovered"
	EventStepRecorded        EventKind = "step_recorded"
	EventNodeSubtreeComplete EventKind = "node_subtree_complete"
	EventProcessTerminated   EventKind = "process_terminated"
)

// Valid reports whether k is one of the known event kinds.
func (k EventKind) Valid() bool {
	switch k {
	case EventNodeDiscovered, EventStepRecorded, EventNodeSubtreeComplete, EventProcessTerminated:
		return true
	}
	return false
}

// Event is a flattened, domain-agnostic view of a lifecycle callback.
// Origin, Target and Depth are only meaningful for EventStepRecorded.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      EventKind `json:"kind"`
	NodeID    NodeID    `json:"node_id,omitempty"`
	Origin    NodeID    `json:"origin,omitempty"`
	Target    NodeID    `json:"target,omitempty"`
	Depth     uint32    `json:"depth,omitempty"`
}

// LifecycleHooks defines callbacks for observing a process without building anything.
// Any nil hook is skipped.
type LifecycleHooks struct {
	OnNodeDiscovered      func(context.Context, *Event)
	OnStepRecorded        func(context.Context, *Event)
	OnNodeSubtreeComplete func(context.Context, *Event)
	OnProcessTerminated   func(context.Context, *Event)
}
