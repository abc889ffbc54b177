package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
)

// Sink implements ports.ArtifactSink in memory.
// Safe for concurrent use.
type Sink struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewSink creates a new in-memory sink.
func NewSink() *Sink {
	return &Sink{
		data: make(map[string][]byte),
	}
}

// Reset drops every stored artifact.
func (s *Sink) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

// Write stores a copy of data so the caller can reuse its buffer.
func (s *Sink) Write(ctx context.Context, name string, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Read retrieves an artifact from memory.
func (s *Sink) Read(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[name]
	if !ok {
		return nil, domain.ErrArtifactNotFound
	}

	ret := make([]byte, len(data))
	copy(ret, data)
	return ret, nil
}

// List returns stored artifact names in lexical order.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
