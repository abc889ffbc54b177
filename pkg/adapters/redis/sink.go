package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

// Sink implements ports.ArtifactSink using Redis.
// Artifacts of one run live under "<prefix><runID>:<name>" and are indexed
// in the set "<prefix><runID>:index".
type Sink struct {
	client *backend.Client
	prefix string
	runID  string
	ttl    time.Duration
}

type Option func(*Sink)

// WithTTL sets the expiration for artifacts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Sink) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for artifacts.
func WithPrefix(prefix string) Option {
	return func(s *Sink) {
		s.prefix = prefix
	}
}

// WithRunID pins the run identifier instead of generating one.
func WithRunID(runID string) Option {
	return func(s *Sink) {
		s.runID = runID
	}
}

// New creates a new Redis sink with options.
func New(address, password string, db int, opts ...Option) *Sink {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis sink from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Sink {
	sink := &Sink{
		client: client,
		prefix: "gpmlog:artifact:",
		runID:  uuid.New().String(),
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(sink)
	}

	return sink
}

// RunID returns the identifier scoping this sink's keys.
func (s *Sink) RunID() string {
	return s.runID
}

func (s *Sink) key(name string) string {
	return s.prefix + s.runID + ":" + name
}

func (s *Sink) indexKey() string {
	return s.prefix + s.runID + ":index"
}

// Reset deletes every artifact of the current run.
func (s *Sink) Reset(ctx context.Context) error {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to read artifact index: %w", err)
	}

	keys := make([]string, 0, len(names)+1)
	for _, name := range names {
		keys = append(keys, s.key(name))
	}
	keys = append(keys, s.indexKey())

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset artifacts: %w", err)
	}
	return nil
}

// Write persists the artifact and records it in the run index.
func (s *Sink) Write(ctx context.Context, name string, data []byte) error {
	pipe := s.client.TxPipeline()

	pipe.Set(ctx, s.key(name), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), name)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.indexKey(), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write artifact %s to redis: %w", name, err)
	}
	return nil
}

// Read retrieves an artifact from Redis.
func (s *Sink) Read(ctx context.Context, name string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, fmt.Errorf("failed to get artifact from redis: %w", err)
	}
	return val, nil
}

// List returns the artifact names of the current run.
// Index members whose key already expired are skipped.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	live := make([]string, 0, len(names))
	for _, name := range names {
		n, err := s.client.Exists(ctx, s.key(name)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check artifact %s: %w", name, err)
		}
		if n == 0 {
			// Lazy cleanup of expired entries
			s.client.SRem(ctx, s.indexKey(), name)
			continue
		}
		live = append(live, name)
	}
	sort.Strings(live)
	return live, nil
}
