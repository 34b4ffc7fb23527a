package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleupdown/updown/pkg/storage"
)

func newLocal(t *testing.T, baseURL string) (*storage.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir, baseURL)
	require.NoError(t, err)
	return s, dir
}

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	_, err := storage.NewLocalStorage("", "")
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)

	dir := filepath.Join(t.TempDir(), "nested", "archive")
	_, err = storage.NewLocalStorage(dir, "")
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestLocalStorage_Put(t *testing.T) {
	t.Parallel()

	t.Run("writes nested key", func(t *testing.T) {
		t.Parallel()
		s, dir := newLocal(t, "")

		obj, err := s.Put(context.Background(), "abc/report.pdf", strings.NewReader("content"), 7, "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "abc/report.pdf", obj.Key)
		assert.Equal(t, int64(7), obj.Size)
		assert.Equal(t, "application/pdf", obj.ContentType)

		data, err := os.ReadFile(filepath.Join(dir, "abc", "report.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))

		entries, err := os.ReadDir(filepath.Join(dir, "abc"))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temporary files left behind")
	})

	t.Run("unknown size and default content type", func(t *testing.T) {
		t.Parallel()
		s, _ := newLocal(t, "")
		obj, err := s.Put(context.Background(), "/x.bin", strings.NewReader("12345"), -1, "")
		require.NoError(t, err)
		assert.Equal(t, "x.bin", obj.Key)
		assert.Equal(t, int64(5), obj.Size)
		assert.Equal(t, "application/octet-stream", obj.ContentType)
	})

	t.Run("size mismatch leaves nothing", func(t *testing.T) {
		t.Parallel()
		s, dir := newLocal(t, "")
		_, err := s.Put(context.Background(), "short.txt", strings.NewReader("abc"), 10, "")
		assert.ErrorIs(t, err, storage.ErrSizeMismatch)
		assert.NoFileExists(t, filepath.Join(dir, "short.txt"))
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		s, _ := newLocal(t, "")
		for _, key := range []string{"../escape.txt", "a/../../b", "", "/", "a\x00b"} {
			_, err := s.Put(context.Background(), key, strings.NewReader("x"), 1, "")
			assert.ErrorIs(t, err, storage.ErrInvalidKey, "%q", key)
		}
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()
		s, _ := newLocal(t, "")
		_, err := s.Put(context.Background(), "broken", errReader{}, -1, "")
		assert.ErrorIs(t, err, storage.ErrFailedToWriteFile)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		s, _ := newLocal(t, "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Put(ctx, "x", strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLocalStorage_ExistsAndDelete(t *testing.T) {
	t.Parallel()
	s, _ := newLocal(t, "")
	ctx := context.Background()

	ok, err := s.Exists(ctx, "a/b.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Put(ctx, "a/b.txt", strings.NewReader("hi"), 2, "text/plain")
	require.NoError(t, err)

	ok, err = s.Exists(ctx, "a/b.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "directories are not objects")

	assert.ErrorIs(t, s.Delete(ctx, "a"), storage.ErrIsDirectory)
	require.NoError(t, s.Delete(ctx, "a/b.txt"))
	assert.ErrorIs(t, s.Delete(ctx, "a/b.txt"), storage.ErrNotFound)

	_, err = s.Exists(ctx, "../x")
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}

func TestLocalStorage_URL(t *testing.T) {
	t.Parallel()

	s, _ := newLocal(t, "https://files.example.com/archive")
	assert.Equal(t, "https://files.example.com/archive/abc/my%20file.txt", s.URL("abc/my file.txt"))
	assert.Empty(t, s.URL("../x"))

	plain, dir := newLocal(t, "")
	assert.Equal(t, "file://"+filepath.ToSlash(filepath.Join(dir, "abc", "f.txt")), plain.URL("abc/f.txt"))
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"report.pdf":          "report.pdf",
		"../../../etc/passwd": "passwd",
		`C:\Windows\file.txt`: "file.txt",
		"":                    "unnamed",
		"..":                  "unnamed",
		"/":                   "unnamed",
		"a\x00b.txt":          "ab.txt",
		" 회의록.docx ":          "회의록.docx",
	}
	for in, want := range tests {
		assert.Equal(t, want, storage.SanitizeName(in), "%q", in)
	}
}
