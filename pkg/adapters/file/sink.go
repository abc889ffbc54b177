package file

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Sink implements ports.ArtifactSink on top of an afs.Service.
// Artifacts are stored as files directly under BasePath.
type Sink struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

// New creates a new file sink rooted at basePath.
// If basePath is empty, it defaults to "gpmlog_out".
// The directory itself is only created by Reset.
func New(basePath string) *Sink {
	return NewWithService(afs.New(), basePath)
}

// NewWithService creates a file sink backed by the given afs.Service,
// allowing non-local schemes (mem://, s3://, ...).
func NewWithService(fs afs.Service, basePath string) *Sink {
	if basePath == "" {
		basePath = "gpmlog_out"
	}
	return &Sink{
		basePath: url.Normalize(basePath, file.Scheme),
		fs:       fs,
	}
}

// BasePath returns the normalized output directory URL.
func (s *Sink) BasePath() string {
	return s.basePath
}

func (s *Sink) artifactPath(name string) string {
	return url.Join(s.basePath, path.Base(name))
}

// Reset empties the output directory if it exists and creates it again.
func (s *Sink) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.fs.Exists(ctx, s.basePath)
	if err != nil {
		return fmt.Errorf("failed to check output directory: %w", err)
	}
	if exists {
		if err := s.fs.Delete(ctx, s.basePath); err != nil {
			return fmt.Errorf("failed to clear output directory: %w", err)
		}
	}
	if err := s.fs.Create(ctx, s.basePath, file.DefaultDirOsMode, true); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Write stores one artifact file.
func (s *Sink) Write(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("artifact name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.artifactPath(name)
	if err := s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", filePath, err)
	}
	return nil
}

// Read retrieves one artifact file.
func (s *Sink) Read(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := s.artifactPath(name)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if artifact exists: %w", err)
	}
	if !exists {
		return nil, domain.ErrArtifactNotFound
	}

	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact file: %w", err)
	}
	return data, nil
}

// List returns the names of the files in the output directory.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exists, err := s.fs.Exists(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check output directory: %w", err)
	}
	if !exists {
		return []string{}, nil
	}

	objects, err := s.fs.List(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}

	names := make([]string, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		names = append(names, object.Name())
	}
	sort.Strings(names)
	return names, nil
}
