package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/adapters/file"
	"github.com/erwanM974/graph-process-manager-loggers/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_Contract(t *testing.T) {
	sink := file.New(filepath.Join(t.TempDir(), "out"))
	ports.RunArtifactSinkContract(t, sink)
}

func TestFileSink_ResetClearsExistingDirectory(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "out")

	require.NoError(t, os.MkdirAll(dir, 0755))
	stale := filepath.Join(dir, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	sink := file.New(dir)
	require.NoError(t, sink.Reset(ctx))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale artifact should be removed")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileSink_WritesPlainFiles(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "out")

	sink := file.New(dir)
	require.NoError(t, sink.Reset(ctx))
	require.NoError(t, sink.Write(ctx, "fib_trace1.txt", []byte("n.n")))

	data, err := os.ReadFile(filepath.Join(dir, "fib_trace1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "n.n", string(data))
}

func TestFileSink_RejectsEmptyName(t *testing.T) {
	sink := file.New(t.TempDir())
	assert.Error(t, sink.Write(context.Background(), "", []byte("x")))
}
