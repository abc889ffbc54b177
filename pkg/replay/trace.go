// Package replay drives process loggers from a recorded exploration.
//
// A trace file lists lifecycle events in delivery order, each carrying an
// optional "data" payload describing the node or the step. Replaying a trace
// through a logger yields the same artifacts as running the logger next to
// the original exploration.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTrace is returned when a trace cannot be replayed as written.
var ErrInvalidTrace = errors.New("invalid trace")

// Event is one recorded lifecycle event.
type Event struct {
	Kind   domain.EventKind `yaml:"kind" json:"kind"`
	Node   domain.NodeID    `yaml:"node,omitempty" json:"node,omitempty"`
	Origin domain.NodeID    `yaml:"origin,omitempty" json:"origin,omitempty"`
	Target domain.NodeID    `yaml:"target,omitempty" json:"target,omitempty"`
	Depth  uint32           `yaml:"depth,omitempty" json:"depth,omitempty"`
	Data   map[string]any   `yaml:"data,omitempty" json:"data,omitempty"`
}

// Trace is a named, ordered list of events.
type Trace struct {
	Name   string  `yaml:"name" json:"name"`
	Events []Event `yaml:"events" json:"events"`
}

// Load reads a trace file. ".json" files are decoded as JSON, anything else as YAML.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	trace, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	if trace.Name == "" {
		trace.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return trace, nil
}

// Decode parses a trace in the given format ("yaml" or "json") and validates event kinds.
func Decode(data []byte, format string) (*Trace, error) {
	var trace Trace
	switch format {
	case "json":
		if err := json.Unmarshal(data, &trace); err != nil {
			return nil, fmt.Errorf("failed to parse trace json: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &trace); err != nil {
			return nil, fmt.Errorf("failed to parse trace yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidTrace, format)
	}

	for i, e := range trace.Events {
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("%w: event %d has unknown kind %q", ErrInvalidTrace, i, e.Kind)
		}
	}
	return &trace, nil
}
