package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/files"})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveAndGet(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "avatars/u1/avatar.png", strings.NewReader("image-bytes"), "image/png")
	require.NoError(t, err)

	reader, err := s.Get(ctx, "avatars/u1/avatar.png")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a/file.txt", strings.NewReader("one"), "text/plain"))
	require.NoError(t, s.Save(ctx, "a/file.txt", strings.NewReader("two"), "text/plain"))

	reader, err := s.Get(ctx, "a/file.txt")
	require.NoError(t, err)
	defer reader.Close()

	data, _ := io.ReadAll(reader)
	assert.Equal(t, "two", string(data))
}

func TestLocalStorage_Exists(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "nothing/here.png")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Save(ctx, "here.png", strings.NewReader("x"), "image/png"))

	exists, err = s.Exists(ctx, "here.png")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStorage_Delete(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "gone.txt", strings.NewReader("x"), "text/plain"))
	require.NoError(t, s.Delete(ctx, "gone.txt"))

	exists, err := s.Exists(ctx, "gone.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, s.Delete(ctx, "gone.txt"))
}

func TestLocalStorage_List(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	// A missing prefix lists empty.
	names, err := s.List(ctx, "portfolios/u1")
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, s.Save(ctx, "portfolios/u1/one.png", strings.NewReader("x"), "image/png"))
	require.NoError(t, s.Save(ctx, "portfolios/u1/two.png", strings.NewReader("x"), "image/png"))
	// Nested directories are not part of the flat listing.
	require.NoError(t, s.Save(ctx, "portfolios/u1/sub/three.png", strings.NewReader("x"), "image/png"))

	names, err = s.List(ctx, "portfolios/u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one.png", "two.png"}, names)
}

func TestLocalStorage_GetURL(t *testing.T) {
	ctx := context.Background()

	s := newTestLocalStorage(t)
	url, err := s.GetURL(ctx, "avatars/u1/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/avatars/u1/avatar.png", url)

	// Without a base URL the /files fallback applies.
	bare, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	url, err = bare.GetURL(ctx, "x.png")
	require.NoError(t, err)
	assert.Equal(t, "/files/x.png", url)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}
