package ports

import (
	"context"
	"testing"

	"github.com/erwanM974/graph-process-manager-loggers/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunArtifactSinkContract runs a suite of tests to verify that an ArtifactSink implementation
// adheres to the defined interface contract.
func RunArtifactSinkContract(t *testing.T, sink ArtifactSink) {
	ctx := context.Background()

	require.NoError(t, sink.Reset(ctx), "Reset should not return error")

	t.Run("Write and Read", func(t *testing.T) {
		err := sink.Write(ctx, "trace1.txt", []byte("a.b.c"))
		require.NoError(t, err, "Write should not return error")

		data, err := sink.Read(ctx, "trace1.txt")
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, "a.b.c", string(data))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, sink.Write(ctx, "trace2.txt", []byte("first")))
		require.NoError(t, sink.Write(ctx, "trace2.txt", []byte("second")))

		data, err := sink.Read(ctx, "trace2.txt")
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := sink.Read(ctx, "missing.txt")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("List", func(t *testing.T) {
		names, err := sink.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "trace1.txt")
		assert.Contains(t, names, "trace2.txt")
	})

	t.Run("Reset clears artifacts", func(t *testing.T) {
		require.NoError(t, sink.Reset(ctx))

		names, err := sink.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)

		_, err = sink.Read(ctx, "trace1.txt")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound, "Read after Reset should return ErrArtifactNotFound")

		require.NoError(t, sink.Write(ctx, "after.txt", []byte("ok")), "sink must be writable after Reset")
	})
}
