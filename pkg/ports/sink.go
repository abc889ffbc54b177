package ports

import "context"

// ArtifactSink stores the named artifacts emitted by loggers.
type ArtifactSink interface {
	// Reset removes every artifact and prepares the sink for a new run.
	Reset(ctx context.Context) error

	// Write stores data under name, replacing any previous artifact with that name.
	Write(ctx context.Context, name string, data []byte) error

	// Read retrieves an artifact.
	// Returns domain.ErrArtifactNotFound if it does not exist.
	Read(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all stored artifacts.
	List(ctx context.Context) ([]string, error)
}
