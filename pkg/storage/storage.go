package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

const defaultContentType = "application/octet-stream"

// Object describes a stored object.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage is a flat key/value object store.
type Storage interface {
	// Put stores r under key, replacing any existing object. size is the
	// expected length, or -1 if unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error)
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes the object under key. Missing objects yield ErrNotFound.
	Delete(ctx context.Context, key string) error
	// URL returns a link to the object.
	URL(key string) string
}

// SanitizeName strips directory components and NUL bytes from a file name
// so it can be used as the last element of a key. Empty and dot names
// become "unnamed".
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	name = strings.TrimSpace(name)

	if name == "." || name == ".." || name == "" || name == "/" {
		return "unnamed"
	}
	return name
}

// cleanKey normalises key and rejects keys leaving the root.
func cleanKey(key string) (string, error) {
	raw := key
	key = strings.ReplaceAll(key, "\\", "/")
	if strings.Contains(key, "\x00") || slices.Contains(strings.Split(key, "/"), "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, raw)
	}
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, raw)
	}
	return key, nil
}

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return defaultContentType
	}
	return ct
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
