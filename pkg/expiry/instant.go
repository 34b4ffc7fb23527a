package expiry

import (
	"strings"
	"time"
)

// State describes the outcome of parsing a raw timestamp.
type State uint8

const (
	// Missing means the timestamp was empty.
	Missing State = iota
	// Invalid means the timestamp could not be parsed.
	Invalid
	// Valid means the timestamp parsed into an instant.
	Valid
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Missing:
		return "missing"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return "unknown"
	}
}

// Instant is the result of Parse. The zero value is a Missing instant.
type Instant struct {
	t     time.Time
	state State
}

// State reports whether the instant is missing, invalid or valid.
func (i Instant) State() State { return i.state }

// Valid reports whether the instant holds a usable time.
func (i Instant) Valid() bool { return i.state == Valid }

// Time returns the instant in UTC. It is the zero time unless Valid.
func (i Instant) Time() time.Time { return i.t }

// layouts accepted after normalization. Fractional seconds are accepted by
// time.Parse without being spelled out in the layout.
var layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04Z07:00",
}

// Normalize applies the backend's UTC convention to a raw timestamp: a value
// that carries no zone designator gets "Z" appended. Values that already end
// in Z or carry a numeric offset are returned unchanged (apart from trimming
// surrounding whitespace and upper-casing a trailing "z").
// Empty input stays empty.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.HasSuffix(s, "z") {
		return s[:len(s)-1] + "Z"
	}
	if hasZone(s) {
		return s
	}
	return s + "Z"
}

// hasZone reports whether the time-of-day part of s ends with a zone
// designator. Only the part after the date/time separator is inspected since
// the date itself contains dashes.
func hasZone(s string) bool {
	if strings.HasSuffix(s, "Z") {
		return true
	}
	sep := strings.IndexAny(s, "T ")
	if sep < 0 {
		return false
	}
	return strings.ContainsAny(s[sep+1:], "+-")
}

// Parse interprets raw as an instant, assuming UTC for zone-less values.
// It never fails: unparsable input yields an Invalid instant. Only the empty
// string is Missing; whitespace-only input is Invalid.
func Parse(raw string) Instant {
	if raw == "" {
		return Instant{state: Missing}
	}
	s := Normalize(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Instant{t: t.UTC(), state: Valid}
		}
	}
	return Instant{state: Invalid}
}
