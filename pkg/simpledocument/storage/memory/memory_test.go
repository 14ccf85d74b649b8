package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-document/pkg/simpledocument"
)

func TestWriteReadDelete(t *testing.T) {
	ctx := context.Background()
	backend := New()
	id := uuid.New()

	require.NoError(t, backend.Write(ctx, id, bytes.NewReader([]byte("hello"))))

	reader, err := backend.Read(ctx, id)
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, []byte("hello"), content)

	require.NoError(t, backend.Delete(ctx, id))

	_, err = backend.Read(ctx, id)
	assert.ErrorIs(t, err, simpledocument.ErrBlobNotFound)

	err = backend.Delete(ctx, id)
	assert.ErrorIs(t, err, simpledocument.ErrBlobNotFound)
}

func TestConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	backend := New()

	const workers = 20
	ids := make([]uuid.UUID, workers)
	for i := range ids {
		ids[i] = uuid.New()
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			err := backend.Write(ctx, ids[i], bytes.NewReader([]byte{byte(i)}))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		reader, err := backend.Read(ctx, id)
		require.NoError(t, err)
		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		reader.Close()
		assert.Equal(t, []byte{byte(i)}, content)
	}
}
