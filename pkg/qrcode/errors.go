package qrcode

import "errors"

var (
	ErrEmptyContent = errors.New("content cannot be empty")
	ErrEncodeFailed = errors.New("failed to encode QR code")
)
