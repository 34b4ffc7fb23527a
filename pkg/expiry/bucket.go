package expiry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBucket is returned by ParseBucket for unrecognised names.
var ErrUnknownBucket = errors.New("unknown expiry bucket")

// Bucket is the derived expiry class of a file. It is computed on every
// query and never stored since it depends on the current time.
type Bucket uint8

const (
	Unlimited Bucket = iota
	ExpiringSoon
	ExpiringLater
	Expired
)

var bucketNames = [...]string{
	Unlimited:     "unlimited",
	ExpiringSoon:  "expiring_soon",
	ExpiringLater: "expiring_later",
	Expired:       "expired",
}

// Buckets lists every bucket in display order.
func Buckets() []Bucket {
	return []Bucket{ExpiringSoon, ExpiringLater, Unlimited, Expired}
}

// String implements fmt.Stringer.
func (b Bucket) String() string {
	if int(b) < len(bucketNames) {
		return bucketNames[b]
	}
	return fmt.Sprintf("bucket(%d)", uint8(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bucket) UnmarshalText(text []byte) error {
	v, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ParseBucket converts a bucket name into a Bucket. Dashes and underscores
// are interchangeable and matching is case-insensitive.
func ParseBucket(name string) (Bucket, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	switch n {
	case "soon":
		return ExpiringSoon, nil
	case "later":
		return ExpiringLater, nil
	}
	for i, s := range bucketNames {
		if s == n {
			return Bucket(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBucket, name)
}
