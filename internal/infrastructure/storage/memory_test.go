package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectStorage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryObjectStorage("http://cdn.test/")

	url, err := store.Upload(ctx, "audio/a.mp3", bytes.NewReader([]byte("ID3")), 3, "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.test/audio/a.mp3", url)

	obj, ok := store.Get("audio/a.mp3")
	require.True(t, ok)
	assert.Equal(t, []byte("ID3"), obj.Data)
	assert.Equal(t, "audio/mpeg", obj.ContentType)

	require.NoError(t, store.Delete(ctx, "https://elsewhere.test/audio/a.mp3"))
	assert.Equal(t, 1, store.Len(), "foreign URLs are ignored")

	require.NoError(t, store.Delete(ctx, url))
	assert.Zero(t, store.Len())
	assert.NoError(t, store.Ping(ctx))
}

func TestMemoryObjectStorage_EmptyKey(t *testing.T) {
	store := NewMemoryObjectStorage("")
	_, err := store.Upload(context.Background(), "", strings.NewReader(""), 0, "")
	require.Error(t, err)
	assert.Equal(t, DefaultMemoryBaseURL, store.baseURL)
}
