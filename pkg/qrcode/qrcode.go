package qrcode

import (
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultPNGSize is the PNG edge length in pixels when none is given.
const DefaultPNGSize = 256

// Option configures encoding.
type Option func(*options)

type options struct {
	level   skipqrcode.RecoveryLevel
	inverse bool
}

// WithHighRecovery uses the highest error correction level instead of
// Medium. The code gets denser.
func WithHighRecovery() Option {
	return func(o *options) { o.level = skipqrcode.Highest }
}

// WithInverse swaps dark and light modules in terminal output, for
// terminals with a light background.
func WithInverse() Option {
	return func(o *options) { o.inverse = true }
}

func encode(content string, opts []Option) (*skipqrcode.QRCode, options, error) {
	o := options{level: skipqrcode.Medium}
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(content) == "" {
		return nil, o, ErrEmptyContent
	}
	q, err := skipqrcode.New(content, o.level)
	if err != nil {
		return nil, o, errors.Join(ErrEncodeFailed, err)
	}
	return q, o, nil
}

// Terminal renders content as text using Unicode half blocks, two modules
// per character cell. The result ends with a newline.
func Terminal(content string, opts ...Option) (string, error) {
	q, o, err := encode(content, opts)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(o.inverse), nil
}

// PNG renders content as a square PNG image of size pixels. Non-positive
// sizes use DefaultPNGSize.
func PNG(content string, size int, opts ...Option) ([]byte, error) {
	q, _, err := encode(content, opts)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultPNGSize
	}
	b, err := q.PNG(size)
	if err != nil {
		return nil, errors.Join(ErrEncodeFailed, err)
	}
	return b, nil
}
